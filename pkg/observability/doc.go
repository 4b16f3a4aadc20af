/*
Package observability provides tools for monitoring the turing engine.

It turns the engine's lifecycle hooks into Prometheus metrics: runs by outcome,
applied transitions and the distribution of run lengths.
*/
package observability
