//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package prusa

import (
	"github.com/printmod/nonplanar"
)

func init() {
	nonplanar.RegisterFlavor(Flavor())
}
