package cli

import (
	"github.com/dpshade/boxgrid/internal/errors"
)

func (c *CLI) printUsage() error {
	c.printf("%s\n", `boxgrid - Headless CLI mode

Usage: boxgrid <command> [options]

Commands:
  categories, cats           List categories
  category, cat              Create or rename a category
  boxes [category]           List boxes
  box add <category>         Add a box to a category
  search <query>             Fuzzy-search boxes
  place, drop <r> <c> <cat> <box>
                             Place a box on the grid
  set <r> <c> <slot> <value> Set one slot of a cell
  show, get <r> <c>          Show a cell and its slots
  fill <r> <c>               Fill a cell's slots interactively
  grid                       Show grid size and occupied cells
  export                     Print or write the resolved grid
  save <file>                Save the workspace as a project file
  import <file>              Replace the workspace with a project file
  copy [r c]                 Copy the resolved grid or one cell
  help                       Show help

Use 'boxgrid help <command>' for detailed help on a specific command.`)
	return nil
}

var commandHelp = map[string]string{
	"categories": `categories - List categories

Usage: boxgrid categories [options]

Options:
  --format, -f <format>  Output format (json, default)`,

	"category": `category - Category management

Usage: boxgrid category <subcommand>

Subcommands:
  create [name]           Create a category ("New Category" when unnamed)
  rename <index> <name>   Rename a category. An empty name is ignored.`,

	"boxes": `boxes - List boxes

Usage: boxgrid boxes [category] [options]

Options:
  --format, -f <format>  Output format (table, json, default)`,

	"box": `box - Box management

Usage: boxgrid box add <category> --content <template> [--color <hex>]

Template markers:
  ..0..                    text
  .c0c.                    color
  .i0i.                    integer (digits, optional leading '-')
  .s0s.                    symbol (no letters or digits)
  .select:label=tmpl,...   options, each with an inner .i0i., .s0s. or text

Example:
  boxgrid box add 0 --content "Score: .i0i. pts .select:Bonus=.i0i." --color "#FFEEAA"`,

	"search": `search - Fuzzy-search boxes by content and category name

Usage: boxgrid search <query> [options]

Options:
  --format, -f <format>  Output format (table, json, default)`,

	"place": `place - Place a box on the grid

Usage: boxgrid place <row> <col> <category> <box>

Placing replaces any cell at the position and clears its values. The first
box on a row adds a row. Any box placed in column 0 adds a column.`,

	"set": `set - Set one slot of a cell

Usage: boxgrid set <row> <col> <slot> <value>

Select options take an encoded value: 1|payload (on) or 0|payload (off).

Examples:
  boxgrid set 0 0 0 7
  boxgrid set 0 0 1 "1|3"`,

	"show": `show - Show a cell

Usage: boxgrid show <row> <col> [options]

Options:
  --format, -f <format>  Output format (json, default)`,

	"fill": `fill - Fill every slot of a cell interactively

Usage: boxgrid fill <row> <col>`,

	"grid": `grid - Show grid size and occupied cells

Usage: boxgrid grid [options]

Options:
  --format, -f <format>  Output format (json, default)`,

	"export": `export - Resolve the grid

Usage: boxgrid export [options]

Options:
  --format, -f <format>  Output format (text, json)
  --output, -o <file>    Write to a file instead of stdout`,

	"save": `save - Save the workspace as a project file

Usage: boxgrid save <file>
       boxgrid save --output <file>`,

	"import": `import - Replace the workspace with a project file

Usage: boxgrid import <file>

The file must hold a JSON object mapping "row_col" keys to cells. On any
error the current workspace is kept.`,

	"copy": `copy - Copy to the clipboard

Usage: boxgrid copy [row col]

Without a position, copies the whole resolved grid.`,
}

var helpAliases = map[string]string{
	"cats": "categories",
	"cat":  "category",
	"drop": "place",
	"get":  "show",
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	if alias, ok := helpAliases[command]; ok {
		command = alias
	}
	text, ok := commandHelp[command]
	if !ok {
		return errors.CommandNotFoundError(command)
	}
	c.printf("%s\n", text)
	return nil
}
