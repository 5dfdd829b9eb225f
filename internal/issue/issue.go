// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies an entry of the issue catalog.
type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	DescriptorInvalidId
	ComponentNotProvidedId
	CircularDependencyId
	DuplicateProviderId
	DuplicateFileId
	RefNotFoundId
	ConfigLoadFailedId
	OutputWriteFailedId
)

// MarkdownMsg is help text rendered with glamour.
type MarkdownMsg string

// HttpLink points at documentation.
type HttpLink string

// Issue is a catalog entry of user-facing help for a failure class.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render returns the entry rendered for a terminal using the named glamour
// style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No package manifest found!

Every package root must contain a ` + "`package.yml`" + ` manifest.

## Things you can try:
- Check the path given with ` + "`-p`" + ` or the ` + "`packages`" + ` config key
- Create a minimal manifest:
~~~yaml
name: core
sources:
  - src/core.js
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Invalid package manifest!

The manifest could not be read as YAML or is missing required keys.

## Required keys:
- ` + "`name`" + `: a non-empty package name
- ` + "`sources`" + `: the list of source files, relative to the package root

## Optional keys:
- ` + "`license`" + `, ` + "`author`" + `, ` + "`authors`",
	}

	descriptorInvalidIssue = &Issue{
		id: DescriptorInvalidId,
		mdMsg: `
# Invalid source descriptor!

A source file begins with a comment block whose YAML front matter could not be parsed.

## Expected format:
~~~js
/*
---
name: Array
requires: [Core]
provides: Array
...
*/
~~~`,
	}

	componentNotProvidedIssue = &Issue{
		id: ComponentNotProvidedId,
		mdMsg: `
# Component not provided!

A file requires a component that no registered package provides.

## Things you can try:
- Register the package that provides it with ` + "`-p`" + `
- Qualify the requirement with its package: ` + "`other/Component`" + `
- Run ` + "`packager list components`" + ` to see what is available`,
	}

	circularDependencyIssue = &Issue{
		id: CircularDependencyId,
		mdMsg: `
# Circular dependency detected!

Files require each other in a loop, so no build order exists.

## Things you can try:
- Follow the cycle printed above and remove one of the requirements
- Move the shared code into a separate file both can require`,
	}

	duplicateProviderIssue = &Issue{
		id: DuplicateProviderId,
		mdMsg: `
# Component provided twice!

Two files of the same package provide one component.

## Things you can try:
- Remove the component from one of the ` + "`provides`" + ` lists
- Disable ` + "`strict_providers`" + ` to keep the first provider`,
	}

	duplicateFileIssue = &Issue{
		id: DuplicateFileId,
		mdMsg: `
# Duplicate file name!

Two sources of a package resolve to the same file name.

## Things you can try:
- Give one of them an explicit ` + "`name`" + ` in its descriptor
- Rename one of the files`,
	}

	refNotFoundIssue = &Issue{
		id: RefNotFoundId,
		mdMsg: `
# Unknown reference!

A file or component reference did not match anything registered.

## Things you can try:
- Run ` + "`packager list files`" + ` or ` + "`packager list components`" + `
- Unqualified references resolve against the root package; prefix them with ` + "`package/`" + ` otherwise`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Run ` + "`packager config show`" + ` to print the effective configuration
- Unset stray ` + "`PACKAGER_*`" + ` environment variables`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write build output!

## Things you can try:
- Check that the output directory is writable
- Omit ` + "`-o`" + ` to write to stdout`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():     manifestNotFoundIssue,
		manifestInvalidIssue.Id():      manifestInvalidIssue,
		descriptorInvalidIssue.Id():    descriptorInvalidIssue,
		componentNotProvidedIssue.Id(): componentNotProvidedIssue,
		circularDependencyIssue.Id():   circularDependencyIssue,
		duplicateProviderIssue.Id():    duplicateProviderIssue,
		duplicateFileIssue.Id():        duplicateFileIssue,
		refNotFoundIssue.Id():          refNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		outputWriteFailedIssue.Id():    outputWriteFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
