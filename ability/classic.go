// SPDX-License-Identifier: GPL-3.0-or-later

package ability

// classicEntry is the (package, ability) pair a classic short name
// resolves to.
type classicEntry struct {
	Package string
	Ability string
}

// ClassicDependencies mirrors the original's table of well-known
// short names abilities can depend on without spelling out the full
// (package, ability) pair, grounded on
// core/models/abilities/ability_dependency.py. Reference abilities
// under the abilities/ package register themselves under these
// names so example and orchestrator code can depend on "capture" or
// "netfilter" without hardcoding a package path.
var ClassicDependencies = map[string]classicEntry{
	"mitm":       {Package: "mitm", Ability: "orchestrator"},
	"debug":      {Package: "examples", Ability: "show"},
	"sendraw":    {Package: "abilities", Ability: "sendraw"},
	"capture":    {Package: "abilities", Ability: "capture"},
	"netfilter":  {Package: "abilities", Ability: "netfilter"},
	"bridge":     {Package: "abilities", Ability: "bridge"},
	"demux":      {Package: "abilities", Ability: "demux"},
	"tcpclnt":    {Package: "examples", Ability: "synctcpclient"},
	"tcpsrv":     {Package: "examples", Ability: "driver"},
	"tlsclnt":    {Package: "examples", Ability: "synctcpclient"},
	"tlssrv":     {Package: "examples", Ability: "driver"},
	"echo":       {Package: "examples", Ability: "hello"},
	"pcapwriter": {Package: "abilities", Ability: "capture"},
	"pcapreader": {Package: "abilities", Ability: "capture"},
}
