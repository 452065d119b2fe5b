// Package ipam приводит адреса, префиксы и MAC к канонической текстовой форме,
// в которой они хранятся в колонках inet, cidr и macaddr.
package ipam

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"schoolnet/internal/logs"
)

var (
	ErrInvalidAddress = errors.New("invalid ip address")
	ErrInvalidNetwork = errors.New("invalid network prefix")
	ErrInvalidMAC     = errors.New("invalid mac address")
)

// NormalizeIP проверяет адрес и возвращает его каноническую запись:
// "192.168.1.1", "2001:db8::1". Пробелы по краям отбрасываются.
func NormalizeIP(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		logs.Logger.Error("Incorrect ip address: empty")
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		logs.Logger.Errorf("Incorrect ip address %q: %v", s, err)
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if addr.Zone() != "" {
		logs.Logger.Errorf("Incorrect ip address %q: zone not allowed", s)
		return "", fmt.Errorf("%w: %q: zone not allowed", ErrInvalidAddress, s)
	}
	ip := addr.String()
	logs.Logger.Debugf("Correct ip address: %s", ip)
	return ip, nil
}

// NormalizeNetwork возвращает префикс в виде сеть/длина. Хостовые биты обнуляются,
// а не считаются ошибкой: "10.10.10.5/30" → "10.10.10.4/30".
// Адрес без длины даёт сеть из одного хоста (/32 или /128),
// для IPv4 длину можно задать маской: "10.0.0.0/255.255.255.0".
func NormalizeNetwork(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		logs.Logger.Error("Incorrect prefix: empty")
		return "", fmt.Errorf("%w: empty", ErrInvalidNetwork)
	}
	p, err := parsePrefix(s)
	if err != nil {
		logs.Logger.Errorf("Incorrect prefix %q: %v", s, err)
		return "", fmt.Errorf("%w: %q", ErrInvalidNetwork, s)
	}
	prefix := p.Masked().String()
	logs.Logger.Debugf("Correct prefix: %s", prefix)
	return prefix, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	addrPart, lenPart, found := strings.Cut(s, "/")
	addr, err := netip.ParseAddr(addrPart)
	if err != nil {
		return netip.Prefix{}, err
	}
	if addr.Zone() != "" {
		return netip.Prefix{}, errors.New("zone not allowed")
	}
	if !found {
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}
	bits, err := prefixLen(addr, lenPart)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, bits), nil
}

func prefixLen(addr netip.Addr, s string) (int, error) {
	if addr.Is4() && strings.Contains(s, ".") {
		m, err := netip.ParseAddr(s)
		if err != nil || !m.Is4() {
			return 0, fmt.Errorf("bad netmask %q", s)
		}
		b := m.As4()
		ones, bits := net.IPv4Mask(b[0], b[1], b[2], b[3]).Size()
		if bits == 0 {
			return 0, fmt.Errorf("non-contiguous netmask %q", s)
		}
		return ones, nil
	}
	// strconv.Atoi принимает "+24", а длина префикса пишется только цифрами
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("bad prefix length %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > addr.BitLen() {
		return 0, fmt.Errorf("bad prefix length %q", s)
	}
	return n, nil
}

// NormalizeMAC принимает MAC-48 через двоеточие, дефис или точки (cisco)
// и возвращает его как xx:xx:xx:xx:xx:xx в нижнем регистре.
func NormalizeMAC(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		logs.Logger.Error("Incorrect mac address: empty")
		return "", fmt.Errorf("%w: empty", ErrInvalidMAC)
	}
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		logs.Logger.Errorf("Incorrect mac address %q", s)
		return "", fmt.Errorf("%w: %q", ErrInvalidMAC, s)
	}
	mac := hw.String()
	logs.Logger.Debugf("Correct mac address: %s", mac)
	return mac, nil
}
