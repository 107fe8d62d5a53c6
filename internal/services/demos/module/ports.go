package module

import (
	demodom "demovault/internal/services/demos/domain"
	quotadom "demovault/internal/services/quota/domain"
	quotamod "demovault/internal/services/quota/module"
)

// Ports declares the injected quota surfaces this module requires and the
// pipeline surface it exposes back
type Ports struct {
	Quota    quotadom.ServicePort
	Accounts quotamod.AccountsPort
}

// ExposedPorts is the cross-module surface of a built demos module
type ExposedPorts struct {
	Pipeline demodom.ServicePort

	// the analysis broker, surfaced for readiness probes
	Queue any
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
