package fetcher

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL rejects URLs that are malformed, use a non-HTTP scheme, or
// (when denyPrivateIPs is set) resolve to an address inside the local
// network. The DNS resolution step is what actually closes the SSRF hole;
// checking the hostname string alone would miss attacker-controlled DNS.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: dns lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: %s resolves to %s", ErrPrivateAddress, hostname, ip)
		}
	}
	return nil
}

// isPrivateIP covers loopback, RFC 1918 / unique-local, and link-local
// ranges for both IP versions.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
