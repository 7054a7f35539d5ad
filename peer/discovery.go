package peer

import (
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// dnsTimeout bounds a single seed lookup.
const dnsTimeout = 5 * time.Second

// DiscoverSeeds resolves each DNS seed hostname to its A records and
// returns "ip:port" addresses for the given port. A seed that fails to
// resolve is skipped rather than aborting the whole lookup; ErrNoSeeds is
// returned only if every seed fails.
//
// This looks up plain A records against upstream (a recursive resolver
// address such as "8.8.8.8:53") rather than validating DNSSEC, since
// peer-address bootstrap has no trust requirement beyond "try connecting
// and let the handshake sort out a dead or hostile peer".
func DiscoverSeeds(seeds []string, port uint16, upstream string) ([]string, error) {
	if upstream == "" {
		upstream = "8.8.8.8:53"
	}

	var addrs []string
	for _, seed := range seeds {
		ips, err := lookupA(seed, upstream)
		if err != nil {
			continue
		}
		for _, ip := range ips {
			addrs = append(addrs, net.JoinHostPort(ip, fmt.Sprint(port)))
		}
	}

	if len(addrs) == 0 {
		return nil, ErrNoSeeds
	}
	return addrs, nil
}

func lookupA(host, upstream string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	msg.RecursionDesired = true

	client := &dns.Client{Timeout: dnsTimeout}
	resp, _, err := client.Exchange(msg, upstream)
	if err != nil {
		return nil, fmt.Errorf("peer: dns lookup %s: %w", host, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("peer: dns lookup %s: rcode %s", host, dns.RcodeToString[resp.Rcode])
	}

	var ips []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("peer: no A records for %s", host)
	}
	return ips, nil
}
