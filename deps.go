package jsgf

// Adapted from the teacher grammar package's toposort: there it ordered
// regexp subrules for string interpolation; here the same quick, unoptimised
// toposort enforces spec.md's "the grammar forbids cycles by construction" —
// Grammar.AddRule(s) runs it over the full dependency graph (existing rules
// plus the ones about to be added) and rejects the batch if a cycle would
// result, rather than rely on the matcher to guard against infinite RuleRef
// recursion.

type (
	depNodes map[string]depLinks
	depLinks map[string]struct{}
)

// toposort returns all rule names in dependency order (a rule before
// anything that references it is, in this walk, a node with no remaining
// unresolved links), or an error naming the rules still mutually dependent
// once no more link-free node can be found.
func toposort(graph map[string][]string) ([]string, error) {
	dag := make(depNodes, len(graph))
	for node, links := range graph {
		set := make(depLinks, len(links))
		for _, l := range links {
			set[l] = struct{}{}
		}
		dag[node] = set
	}

	var result []string

	for len(dag) != 0 {
		free := nodesWithoutLinks(dag)
		if len(free) == 0 {
			remaining := make([]string, 0, len(dag))
			for node := range dag {
				remaining = append(remaining, node)
			}
			return nil, grammarErr("", "", "cyclic rule dependency among: %v", remaining)
		}

		for _, node := range free {
			result = append(result, node)
			delete(dag, node)
			for _, links := range dag {
				delete(links, node)
			}
		}
	}

	return result, nil
}

func nodesWithoutLinks(dag depNodes) []string {
	var result []string
	for node, links := range dag {
		if len(links) == 0 {
			result = append(result, node)
		}
	}
	return result
}
