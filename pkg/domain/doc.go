/*
Package domain contains the core value types of the Turing machine simulator.

It defines the vocabulary shared by the parser, the machine definition and the
execution engine. This package is kept pure and free of I/O.

# Key Entities

  - Key / Action / Transition: one entry of the transition function, δ(q, a) = (q', b, M).
  - Move: the head movement (Left, Right, Stay).
  - Configuration: a snapshot of the tape window, the current state and the head.
  - Trace: the ordered configurations of one run, plus an optional truncation marker.
  - Outcome: the classification of a finished run (accepted, rejected, truncated, undecided).
*/
package domain
