// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Issue identifiers. Zero means "no catalog entry".
const (
	EnvironmentNotFoundId Id = iota + 1
	EnvironmentExistsId
	InvalidEnvironmentNameId
	NoInterpretersId
	CatalogCorruptId
	BundleNotFoundId
	ShellNotFoundId
	ConfigLoadFailedId
	CommandFailedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is Markdown help text.
	MarkdownMsg string

	// HttpLink is a documentation or external link.
	HttpLink string

	// Issue is a catalog entry describing a failure kind and how to recover.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	environmentNotFoundIssue = &Issue{
		id: EnvironmentNotFoundId,
		mdMsg: `
# Environment not found!

The environment you named does not exist under the environment root.

## Things you can try:
- List the known environments:
~~~
$ envy list
~~~

- Create it first:
~~~
$ envy create <env_name>
~~~`,
	}

	environmentExistsIssue = &Issue{
		id: EnvironmentExistsId,
		mdMsg: `
# Environment already exists!

A directory with this name is already present under the environment root.

## Things you can try:
- Activate the existing environment:
~~~
$ envy activate <env_name>
~~~

- Or delete it and create it again:
~~~
$ envy delete <env_name>
~~~`,
	}

	invalidEnvironmentNameIssue = &Issue{
		id: InvalidEnvironmentNameId,
		mdMsg: `
# Invalid environment name!

Environment names become directory names, so they must be a single path
component.

## Rules:
- No path separators ('/' or '\')
- Not '.' or '..', and not starting with '-'
- Not a Windows reserved name (CON, NUL, COM1, ...)`,
	}

	noInterpretersIssue = &Issue{
		id: NoInterpretersId,
		mdMsg: `
# No Python interpreter found!

envy scans every directory on your PATH for python, python3 and
python3.6 through python3.12, and none of them answered ` + "`--version`" + `.

## Things you can try:
- Install Python and make sure it is on your PATH
- Point envy at an interpreter explicitly:
~~~
$ envy create demo --python /usr/local/bin/python3.12
~~~
- See what envy can discover:
~~~
$ envy pythons
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	catalogCorruptIssue = &Issue{
		id: CatalogCorruptId,
		mdMsg: `
# The bundle catalog could not be read!

The catalog must be a JSON object mapping bundle names to arrays of package
specifiers:

~~~json
{"basic-ml": ["numpy", "pandas"]}
~~~

## Things you can try:
- Fix the JSON syntax in the catalog file
- Show which file envy is reading:
~~~
$ envy config show
~~~`,
	}

	bundleNotFoundIssue = &Issue{
		id: BundleNotFoundId,
		mdMsg: `
# Bundle not found!

## Things you can try:
- List the known bundles:
~~~
$ envy list
~~~

- Define a new bundle:
~~~
$ envy new
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# No shell available!

envy opens an interactive shell to activate an environment, but could not
find one.

## Things you can try:
- Set the SHELL environment variable to your shell's path
- Install bash, or make sure /bin/sh exists`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Show the effective configuration and its path:
~~~
$ envy config show
$ envy config path
~~~
- Recreate the defaults:
~~~
$ envy config init
~~~`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# A command inside the environment failed!

The remaining commands in the chain were skipped.

## Things you can try:
- Re-run with verbose output to see every command envy issued:
~~~
$ envy --verbose create <env_name>
~~~
- Activate the environment and run the command by hand:
~~~
$ envy activate <env_name>
~~~`,
	}

	issues = map[Id]*Issue{
		environmentNotFoundIssue.Id():    environmentNotFoundIssue,
		environmentExistsIssue.Id():      environmentExistsIssue,
		invalidEnvironmentNameIssue.Id(): invalidEnvironmentNameIssue,
		noInterpretersIssue.Id():         noInterpretersIssue,
		catalogCorruptIssue.Id():         catalogCorruptIssue,
		bundleNotFoundIssue.Id():         bundleNotFoundIssue,
		shellNotFoundIssue.Id():          shellNotFoundIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		commandFailedIssue.Id():          commandFailedIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the Markdown message with the given glamour style
// ("dark", "light", "notty", ...), followed by any links.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry, ordered by Id.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
