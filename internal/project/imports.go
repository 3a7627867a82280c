package project

import "regexp"

// The repair passes are plain text substitutions, not a parser. They fix
// the handful of malformed import shapes that show up in scaffolded
// front-end code: unquoted asset paths and import lines whose closing
// quote was lost at the end of the line. Order matters; later passes may
// re-touch text produced by earlier ones.
var (
	// import X from ./assets/foo.svg  ->  import X from './assets/foo.svg'
	assetImportPattern = regexp.MustCompile(`(?m)import\s+(\w+)\s+from\s+['"]?(\./assets/[^'"\n;]+?)['"]?(;?)$`)

	// import X from 'foo  ->  import X from 'foo'
	defaultImportPattern = regexp.MustCompile(`(?m)import\s+(\w+)\s+from\s+'([^'\n;]+?)'?(;?)$`)

	// from 'foo  ->  from 'foo'
	fromClausePattern = regexp.MustCompile(`(?m)from\s+'([^'\n;]+?)'?(;?)$`)
)

// RepairImports normalizes asset-import syntax in source text. Repairing
// already well-formed text returns it unchanged.
func RepairImports(content string) string {
	content = assetImportPattern.ReplaceAllString(content, "import ${1} from '${2}'${3}")
	content = defaultImportPattern.ReplaceAllString(content, "import ${1} from '${2}'${3}")
	content = fromClausePattern.ReplaceAllString(content, "from '${1}'${2}")
	return content
}
