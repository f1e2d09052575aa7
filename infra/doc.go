// Package infra contains technical adapters around the simulation:
// logging, telemetry sinks and the MQTT publisher. These packages
// depend only on the interfaces defined in the core packages.
package infra
