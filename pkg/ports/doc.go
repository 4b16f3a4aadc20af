/*
Package ports defines the driven ports (interfaces) of the turing adapters.

Simulation is deterministic: the same machine, input and options always produce
the same trace. Servers exploit this by caching encoded results.

# Key Interfaces

  - ResultCache: stores encoded simulation results under a request key (e.g., in Memory or Redis).
*/
package ports
