/*
Package htmlbuild builds DOM trees from HTML parse trees.

Parsing is done by golang.org/x/net/html. The resulting parse tree is converted
node by node and assembled with the public insertion operations of package dom,
so every node is registered with the agent's tree registry exactly like nodes
created by a script.

Declarative shadow roots are supported: a <template shadowrootmode="open"> (or
"closed") element attaches a shadow root to its parent element, and the
template's contents become the children of that shadow root. A template whose
parent cannot host a shadow root stays an ordinary template element.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlbuild

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domcore.htmlbuild'
func tracer() tracing.Trace {
	return tracing.Select("domcore.htmlbuild")
}
