// Package graph maintains the incremental knowledge graph of account
// relationships and evaluates the risk rules over it.
package graph

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Edge is a single observed transfer. Edges are append-only: the graph never
// forgets a transfer once added, because cycle detection must see the full
// relationship history rather than a sliding window.
type Edge struct {
	To        string
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Graph is a directed multigraph of account-to-account transfers. Nodes are
// account identifiers; repeated transfers between the same pair are kept as
// distinct edges since repetition is meaningful signal.
//
// Reads and writes are guarded by a single RWMutex: edge insertion takes the
// write lock, rule queries take the read lock.
type Graph struct {
	mu sync.RWMutex

	// out holds every edge, in insertion order per source account.
	out map[string][]Edge
	// succ and pred hold distinct-neighbour adjacency with parallel edge
	// counts, used for traversal and degree rules.
	succ map[string]map[string]int
	pred map[string]map[string]int

	nodes map[string]struct{}
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		out:   make(map[string][]Edge),
		succ:  make(map[string]map[string]int),
		pred:  make(map[string]map[string]int),
		nodes: make(map[string]struct{}),
	}
}

// AddEdge inserts a directed transfer edge from -> to. It always succeeds.
func (g *Graph) AddEdge(from, to string, amount decimal.Decimal, ts time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.out[from] = append(g.out[from], Edge{To: to, Amount: amount, Timestamp: ts})

	if g.succ[from] == nil {
		g.succ[from] = make(map[string]int)
	}
	g.succ[from][to]++

	if g.pred[to] == nil {
		g.pred[to] = make(map[string]int)
	}
	g.pred[to][from]++

	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	g.edges++
}

// InDegree returns the number of distinct accounts that have sent to the
// given account. Unseen accounts have degree zero.
func (g *Graph) InDegree(account string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.pred[account])
}

// OutDegree returns the number of distinct accounts the given account has
// sent to.
func (g *Graph) OutDegree(account string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.succ[account])
}

// HasNode reports whether the account has appeared on either side of a
// transfer.
func (g *Graph) HasNode(account string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[account]
	return ok
}

// NodeCount returns the number of distinct accounts in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the total number of edges, counting parallel edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// FindCycle searches for one simple directed cycle through the given account
// using a depth-capped DFS. It returns the cycle members in path order, or
// nil if none was found within the bounds.
//
// The search spends at most stepBudget node expansions; when the budget runs
// out it stops and returns ErrBudgetExhausted so callers can degrade instead
// of blocking the stream. Exhaustive cycle enumeration over a graph that
// only grows is combinatorially explosive and is deliberately not attempted.
func (g *Graph) FindCycle(account string, maxDepth, stepBudget int) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[account]; !ok {
		return nil, nil
	}

	s := &cycleSearch{
		g:       g,
		start:   account,
		max:     maxDepth,
		budget:  stepBudget,
		visited: make(map[string]int),
	}

	path, err := s.dfs(account, 0)
	if err != nil {
		return nil, err
	}
	return path, nil
}

// ErrBudgetExhausted is returned by FindCycle when the step budget runs out
// before the search space is covered.
var ErrBudgetExhausted = errors.New("cycle search budget exhausted")

type cycleSearch struct {
	g       *Graph
	start   string
	max     int
	budget  int
	visited map[string]int // node -> shallowest depth expanded at
	path    []string
}

// dfs walks distinct successors looking for a path back to the start node.
// A node is re-expanded only when reached at a shallower depth than before,
// since the remaining depth allowance is larger then.
func (s *cycleSearch) dfs(node string, depth int) ([]string, error) {
	if s.budget <= 0 {
		return nil, ErrBudgetExhausted
	}
	s.budget--

	if depth >= s.max {
		return nil, nil
	}

	s.path = append(s.path, node)
	defer func() { s.path = s.path[:len(s.path)-1] }()

	for next := range s.g.succ[node] {
		if next == s.start {
			cycle := make([]string, len(s.path))
			copy(cycle, s.path)
			return cycle, nil
		}

		if prev, seen := s.visited[next]; seen && prev <= depth+1 {
			continue
		}
		s.visited[next] = depth + 1

		if s.onPath(next) {
			continue
		}

		cycle, err := s.dfs(next, depth+1)
		if cycle != nil || err != nil {
			return cycle, err
		}
	}

	return nil, nil
}

func (s *cycleSearch) onPath(node string) bool {
	for _, n := range s.path {
		if n == node {
			return true
		}
	}
	return false
}
