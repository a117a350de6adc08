package cluster

import (
	"fmt"

	consul "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// Registration describes the service instance announced to Consul. Consul
// polls http://Host:Port/health to track it.
type Registration struct {
	ServiceName string
	Host        string
	Port        int
	Tags        []string
}

// ID is unique per host so several instances can share a service name.
func (r Registration) ID() string {
	return fmt.Sprintf("%s-%s", r.ServiceName, r.Host)
}

func (r Registration) agentRegistration() *consul.AgentServiceRegistration {
	return &consul.AgentServiceRegistration{
		ID:   r.ID(),
		Name: r.ServiceName,
		Port: r.Port,
		Tags: r.Tags,
		Meta: map[string]string{"websocket": "/ws"},
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", r.Host, r.Port),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register announces r to the local agent and returns the service ID.
func Register(client *consul.Client, r Registration, logger *zap.Logger) (string, error) {
	if err := client.Agent().ServiceRegister(r.agentRegistration()); err != nil {
		return "", fmt.Errorf("register %s in consul: %w", r.ServiceName, err)
	}
	if logger != nil {
		logger.Info("service registered in consul", zap.String("service", r.ServiceName), zap.String("id", r.ID()))
	}
	return r.ID(), nil
}

func Deregister(client *consul.Client, serviceID string) error {
	if err := client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("deregister %s from consul: %w", serviceID, err)
	}
	return nil
}
