// Package compile turns a server registry and an environment snapshot into
// the mcpServers document consumed by the desktop clients.
//
// There is exactly one transform from [registry.ServerEntry] to
// [RenderedServer]: [Compiler.Render]. Preview and write differ only in the
// [Sink] the marshaled document is handed to.
//
// # Argument layout
//
// Every rendered server runs docker with the same frame:
//
//	run --rm -i <archetype args> [--entrypoint E] --env-file <abs path> <image> <cmd args>
//
// The archetype args come from a dispatch table with one builder per
// archetype. mount_based adds one --volume per directory of its mount
// variable, in list order. privileged adds --network for each network and
// then --volume for each declared volume. api_based and standalone add
// nothing.
//
// # Overrides
//
// Two small named tables force the archetype or the command of specific
// entries. The built-in tables carry a single exception for the docker
// server; configuration may add more.
package compile
