// Package methodology provides the registry of development methodologies
// supported by Aichaku.
//
// The registry is the single source of truth for which methodologies exist,
// which subset is installed by default, and which documentation templates
// each methodology contributes when scaffolded into a project. It is built
// once from a declarative definition and is immutable afterwards, so all
// accessors are safe for unsynchronized concurrent use.
//
// Collaborators (the installer, the upgrade flow, and remote discovery
// fallback) consume the registry through its read accessors only; the
// underlying tables are never exposed.
package methodology
