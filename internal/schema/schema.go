// Package schema declares the HCL structures of the harness's grid files.
package schema

import "github.com/hashicorp/hcl/v2"

// ScenarioArgs is the raw body of a scenario's 'arguments' block. It is
// decoded later against the input struct the scenario registered, so the
// grid schema stays ignorant of per-scenario fields.
type ScenarioArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Scenario is one `scenario "<type>" "<name>"` block from a grid file.
type Scenario struct {
	Type      string        `hcl:"scenario_type,label"`
	Name      string        `hcl:"instance_name,label"`
	Arguments *ScenarioArgs `hcl:"arguments,block"`
}

// Grid is the top-level structure of a grid file: the ordered list of
// scenarios one harness invocation runs.
type Grid struct {
	Scenarios []*Scenario `hcl:"scenario,block"`
	Body      hcl.Body    `hcl:",remain"`
}
