// Package setup runs the linking pipeline: ensure the canonical document,
// scan the candidates, collect the user's selection, reconcile the links and
// update the ignore manifest. Each step runs once, in that order.
package setup
