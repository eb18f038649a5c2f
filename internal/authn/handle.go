// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package authn

import (
	"fmt"
	"math/rand"
)

var handleAdjectives = []string{
	"quiet", "amber", "brisk", "cedar", "dusty", "eager", "fleet", "gentle",
	"hazy", "iron", "jolly", "keen", "lunar", "mellow", "nimble", "opal",
}

var handleAnimals = []string{
	"otter", "heron", "lynx", "finch", "badger", "whale", "sparrow", "marten",
	"osprey", "tapir", "vole", "wren", "ibex", "crane", "newt", "puffin",
}

// generateHandle returns an adjective-animal fallback handle for human
// token issuance when no username was supplied.
func generateHandle() string {
	adjective := handleAdjectives[rand.Intn(len(handleAdjectives))]
	animal := handleAnimals[rand.Intn(len(handleAnimals))]
	return fmt.Sprintf("%s-%s-%d", adjective, animal, rand.Intn(1000))
}
