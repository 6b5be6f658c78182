package compile

import (
	"strings"

	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// buildContext is what an archetype builder sees for one entry.
type buildContext struct {
	entry *registry.ServerEntry
	snap  *env.Snapshot
	warn  func(kind WarningKind, field, msg string)
}

// builderFunc returns the archetype-specific args placed between "-i" and
// the entrypoint/env-file section.
type builderFunc func(bc *buildContext) []string

var builders = map[registry.Archetype]builderFunc{
	registry.APIBased:   buildPlain,
	registry.Standalone: buildPlain,
	registry.MountBased: buildMountBased,
	registry.Privileged: buildPrivileged,
}

func buildPlain(bc *buildContext) []string {
	if len(bc.entry.Volumes) > 0 {
		bc.warn(WarnIgnoredField, "volumes", "volumes are only mounted for privileged servers")
	}
	if len(bc.entry.Networks) > 0 {
		bc.warn(WarnIgnoredField, "networks", "networks are only attached for privileged servers")
	}
	return nil
}

func buildMountBased(bc *buildContext) []string {
	e := bc.entry
	mountVar := e.MountVar()
	if len(e.Volumes) > 0 {
		bc.warn(WarnIgnoredField, "volumes", "mount_based servers mount "+mountVar+" instead of declared volumes")
	}
	if len(e.Networks) > 0 {
		bc.warn(WarnIgnoredField, "networks", "networks are only attached for privileged servers")
	}

	res := bc.snap.MountDirs(mountVar)
	if res.Placeholder {
		bc.warn(WarnEmptyMountList, mountVar, mountVar+" has no real value; no directories are mounted")
		return nil
	}
	for _, u := range res.Unresolved {
		bc.warn(WarnUnresolvedReference, mountVar, u.Text+" is not set and was left literal")
	}

	args := make([]string, 0, 2*len(res.Mounts))
	seen := make(map[string]string, len(res.Mounts))
	for _, m := range res.Mounts {
		if prev, ok := seen[m.Container]; ok {
			bc.warn(WarnDuplicateMount, mountVar, prev+" and "+m.Host+" both map to "+m.Container)
		}
		seen[m.Container] = m.Host
		args = append(args, "--volume", m.Spec())
	}
	return args
}

func buildPrivileged(bc *buildContext) []string {
	e := bc.entry
	var args []string
	for _, n := range e.Networks {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		args = append(args, "--network", n)
	}
	for _, v := range e.Volumes {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		expanded, unresolved := bc.snap.Expand(v)
		for _, u := range unresolved {
			bc.warn(WarnUnresolvedReference, "volumes", u.Text+" is not set and was left literal")
		}
		args = append(args, "--volume", expanded)
	}
	return args
}
