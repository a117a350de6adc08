//START OF FILE kingbandits/internal/services/cluster/discovery.go
package cluster

import (
	"errors"
	"fmt"
	"math/rand/v2"

	consul "github.com/hashicorp/consul/api"
)

// ErrNoHealthyInstance is returned when Consul knows no passing instance of a service.
var ErrNoHealthyInstance = errors.New("no healthy instance")

// DiscoverAnyHealthy returns host:port of a random passing instance of serviceName.
func DiscoverAnyHealthy(client *consul.Client, serviceName string, r *rand.Rand) (string, error) {
	entries, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("query consul for %s: %w", serviceName, err)
	}
	addr, err := pickAddress(entries, r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", serviceName, err)
	}
	return addr, nil
}

func pickAddress(entries []*consul.ServiceEntry, r *rand.Rand) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoHealthyInstance
	}
	s := entries[r.IntN(len(entries))]
	addr := s.Service.Address
	if addr == "" && s.Node != nil {
		addr = s.Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, s.Service.Port), nil
}

//END OF FILE kingbandits/internal/services/cluster/discovery.go
