package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dpshade/boxgrid/internal/clipboard"
	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/placeholder"
	"github.com/dpshade/boxgrid/internal/renderer"
	"github.com/dpshade/boxgrid/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
	driver  PromptDriver
	clip    *clipboard.Clipboard
	out     io.Writer
}

// NewCLI creates a new CLI instance writing to stdout
func NewCLI(svc *service.Service) *CLI {
	return &CLI{
		service: svc,
		driver:  NewSurveyDriver(),
		clip:    clipboard.New(),
		out:     os.Stdout,
	}
}

// WithDriver replaces the prompt driver used by interactive commands
func (c *CLI) WithDriver(d PromptDriver) *CLI {
	c.driver = d
	return c
}

// WithOutput redirects command output
func (c *CLI) WithOutput(w io.Writer) *CLI {
	c.out = w
	return c
}

// WithClipboard replaces the clipboard used by the copy command
func (c *CLI) WithClipboard(clip *clipboard.Clipboard) *CLI {
	c.clip = clip
	return c
}

func (c *CLI) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "categories", "cats":
		return c.listCategories(commandArgs)
	case "category", "cat":
		return c.handleCategory(commandArgs)
	case "boxes":
		return c.listBoxes(commandArgs)
	case "box":
		return c.handleBox(commandArgs)
	case "search":
		return c.searchBoxes(commandArgs)
	case "place", "drop":
		return c.placeBox(commandArgs)
	case "set":
		return c.setValue(commandArgs)
	case "show", "get":
		return c.showCell(commandArgs)
	case "fill":
		return c.fillCell(commandArgs)
	case "grid":
		return c.showGrid(commandArgs)
	case "export":
		return c.handleExport(commandArgs)
	case "save":
		return c.handleSave(commandArgs)
	case "import":
		return c.handleImport(commandArgs)
	case "copy":
		return c.copyExport(commandArgs)
	case "help":
		return c.printHelp(commandArgs)
	default:
		return errors.CommandNotFoundError(command).
			WithDetails("Use 'help' for usage information")
	}
}

// parseFlags splits args into positionals and the values of the named flags.
// Each entry of names maps every alias of a flag to its canonical name.
func parseFlags(args []string, names map[string]string) ([]string, map[string]string) {
	var positional []string
	flags := make(map[string]string)
	for i := 0; i < len(args); i++ {
		name, ok := names[args[i]]
		if !ok {
			positional = append(positional, args[i])
			continue
		}
		if i+1 < len(args) {
			flags[name] = args[i+1]
			i++
		}
	}
	return positional, flags
}

var (
	formatFlag = map[string]string{"--format": "format", "-f": "format"}
	outputFlag = map[string]string{"--output": "output", "-o": "output"}
)

func mergeFlags(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// parseInts converts the leading positionals to integers
func parseInts(command string, args []string, names ...string) ([]int, error) {
	if len(args) < len(names) {
		return nil, errors.InvalidCommandError(command,
			fmt.Sprintf("requires %s", strings.Join(names, " ")))
	}
	out := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, errors.InvalidInputError(fmt.Sprintf("%s must be an integer, got %q", name, args[i]))
		}
		out[i] = n
	}
	return out, nil
}

// listCategories lists categories with their box counts
func (c *CLI) listCategories(args []string) error {
	_, flags := parseFlags(args, formatFlag)
	categories := c.service.Categories()

	if flags["format"] == "json" {
		return c.writeJSON(categories)
	}
	if len(categories) == 0 {
		c.printf("No categories. Create one with 'category create'.\n")
		return nil
	}
	for i, cat := range categories {
		c.printf("%d  %s (%d boxes)\n", i, cat.Name, len(cat.Boxes))
	}
	return nil
}

// handleCategory handles category create and rename
func (c *CLI) handleCategory(args []string) error {
	if len(args) == 0 {
		return errors.InvalidCommandError("category", "requires a subcommand (create, rename)")
	}

	switch args[0] {
	case "create", "new":
		idx, err := c.service.CreateCategory()
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		if len(args) > 1 {
			if err := c.service.RenameCategory(idx, strings.Join(args[1:], " ")); err != nil {
				return fmt.Errorf("failed to name category: %w", err)
			}
		}
		c.printf("Created category %d: %s\n", idx, c.service.Categories()[idx].Name)
		return nil
	case "rename":
		nums, err := parseInts("category rename", args[1:], "<index>")
		if err != nil {
			return err
		}
		name := strings.Join(args[2:], " ")
		if err := c.service.RenameCategory(nums[0], name); err != nil {
			return fmt.Errorf("failed to rename category: %w", err)
		}
		if name == "" {
			c.printf("Empty name ignored\n")
			return nil
		}
		c.printf("Renamed category %d to %s\n", nums[0], name)
		return nil
	default:
		return errors.InvalidCommandError("category", fmt.Sprintf("unknown subcommand %q", args[0]))
	}
}

// listBoxes lists the boxes of one category, or of every category
func (c *CLI) listBoxes(args []string) error {
	positional, flags := parseFlags(args, formatFlag)

	var refs []service.BoxRef
	if len(positional) > 0 {
		nums, err := parseInts("boxes", positional, "<category>")
		if err != nil {
			return err
		}
		boxes, err := c.service.Boxes(nums[0])
		if err != nil {
			return err
		}
		name := c.service.Categories()[nums[0]].Name
		for i, b := range boxes {
			refs = append(refs, service.BoxRef{Category: nums[0], CategoryName: name, Index: i, Box: b})
		}
	} else {
		refs = c.service.AllBoxes()
	}

	return c.formatBoxes(refs, flags["format"])
}

// handleBox handles box add
func (c *CLI) handleBox(args []string) error {
	if len(args) == 0 || args[0] != "add" {
		return errors.InvalidCommandError("box", "requires the 'add' subcommand")
	}

	positional, flags := parseFlags(args[1:], map[string]string{
		"--content": "content", "-c": "content",
		"--color": "color",
	})
	nums, err := parseInts("box add", positional, "<category>")
	if err != nil {
		return err
	}

	box, err := c.service.AddBox(nums[0], flags["content"], flags["color"])
	if err != nil {
		return fmt.Errorf("failed to add box: %w", err)
	}
	boxes, err := c.service.Boxes(nums[0])
	if err != nil {
		return err
	}
	c.printf("Added box %d to category %d: %s (%s)\n", len(boxes)-1, nums[0], box.Content, box.Color)
	return nil
}

// searchBoxes fuzzy-searches box contents and category names
func (c *CLI) searchBoxes(args []string) error {
	positional, flags := parseFlags(args, formatFlag)
	if len(positional) == 0 {
		return errors.InvalidCommandError("search", "requires a query")
	}
	return c.formatBoxes(c.service.SearchBoxes(strings.Join(positional, " ")), flags["format"])
}

func (c *CLI) formatBoxes(refs []service.BoxRef, format string) error {
	switch format {
	case "json":
		return c.writeJSON(refs)
	case "table":
		c.printf("%-6s %-20s %-9s %s\n", "Ref", "Category", "Color", "Content")
		c.printf("%s\n", strings.Repeat("-", 60))
		for _, r := range refs {
			name := r.CategoryName
			if len(name) > 20 {
				name = name[:17] + "..."
			}
			c.printf("%-6s %-20s %-9s %s\n", fmt.Sprintf("%d/%d", r.Category, r.Index), name, r.Box.Color, r.Box.Content)
		}
	default:
		for _, r := range refs {
			c.printf("%d/%d  [%s] %s\n", r.Category, r.Index, r.CategoryName, r.Box.Content)
		}
	}
	return nil
}

// placeBox drops a box definition onto the grid
func (c *CLI) placeBox(args []string) error {
	nums, err := parseInts("place", args, "<row>", "<col>", "<category>", "<box>")
	if err != nil {
		return err
	}

	box, err := c.service.Box(nums[2], nums[3])
	if err != nil {
		return err
	}
	p, err := c.service.PlaceBox(nums[0], nums[1], box)
	if err != nil {
		return fmt.Errorf("failed to place box: %w", err)
	}

	c.printf("Placed box at %s\n", p.Key)
	if p.Rebuild() {
		rows, cols := c.service.Size()
		c.printf("Grid expanded to %d rows x %d cols\n", rows, cols)
	}
	return nil
}

// setValue writes one encoded slot value
func (c *CLI) setValue(args []string) error {
	nums, err := parseInts("set", args, "<row>", "<col>", "<slot>")
	if err != nil {
		return err
	}
	value := strings.Join(args[3:], " ")
	if err := c.service.SetValue(nums[0], nums[1], nums[2], value); err != nil {
		return err
	}

	text, err := c.service.ResolveCell(nums[0], nums[1])
	if err != nil {
		return err
	}
	c.printf("%s\n", strings.TrimRight(text, " "))
	return nil
}

// cellView is the structured form of a cell printed by show
type cellView struct {
	Key      string           `json:"key"`
	Content  string           `json:"content"`
	Color    string           `json:"color"`
	Values   models.ValueList `json:"values"`
	Slots    []slotView       `json:"slots"`
	Resolved string           `json:"resolved"`
}

type slotView struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Label   string `json:"label,omitempty"`
	Inner   string `json:"inner,omitempty"`
	Value   string `json:"value"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// showCell displays a cell, its slots and its resolved text
func (c *CLI) showCell(args []string) error {
	positional, flags := parseFlags(args, formatFlag)
	nums, err := parseInts("show", positional, "<row>", "<col>")
	if err != nil {
		return err
	}

	cell, ok := c.service.Cell(nums[0], nums[1])
	if !ok {
		return errors.NotFoundError(fmt.Sprintf("cell %d,%d", nums[0], nums[1]))
	}
	parts, err := c.service.Bind(nums[0], nums[1])
	if err != nil {
		return err
	}
	resolved, err := c.service.ResolveCell(nums[0], nums[1])
	if err != nil {
		return err
	}

	view := cellView{
		Key:      models.CellKey{Row: nums[0], Col: nums[1]}.String(),
		Content:  cell.Content,
		Color:    cell.Color,
		Slots:    []slotView{},
		Resolved: resolved,
		Values:   cell.Values,
	}
	for _, f := range renderer.Fields(parts) {
		sv := slotView{Index: f.Index, Kind: f.Kind.String(), Value: f.Value()}
		if f.IsOption() {
			enabled := f.Enabled()
			sv.Label = f.Label
			sv.Inner = f.Inner.String()
			sv.Value = f.Payload()
			sv.Enabled = &enabled
		}
		view.Slots = append(view.Slots, sv)
	}

	if flags["format"] == "json" {
		return c.writeJSON(view)
	}

	c.printf("Cell: %s\n", view.Key)
	c.printf("Color: %s\n", view.Color)
	c.printf("Content: %s\n", view.Content)
	if len(view.Slots) > 0 {
		c.printf("Slots:\n")
		for _, s := range view.Slots {
			if s.Enabled != nil {
				state := "off"
				if *s.Enabled {
					state = "on"
				}
				c.printf("  [%d] %s %q (%s) %s = %q\n", s.Index, s.Kind, s.Label, s.Inner, state, s.Value)
				continue
			}
			c.printf("  [%d] %s = %q\n", s.Index, s.Kind, s.Value)
		}
	}
	c.printf("\nResolved:\n%s\n", view.Resolved)
	return nil
}

// showGrid prints the grid extents and occupied cells
func (c *CLI) showGrid(args []string) error {
	_, flags := parseFlags(args, formatFlag)
	rows, cols := c.service.Size()
	ws := c.service.Workspace()

	if flags["format"] == "json" {
		return c.writeJSON(map[string]interface{}{
			"rows":      rows,
			"cols":      cols,
			"workspace": ws,
		})
	}

	c.printf("Grid: %d rows x %d cols, %d cells\n", rows, cols, len(ws))
	for _, key := range ws.Keys() {
		cell := ws[key.String()]
		c.printf("  %-7s %-8s %s\n", key, cell.Color, cell.Content)
	}
	return nil
}

// handleExport resolves the grid to text or JSON
func (c *CLI) handleExport(args []string) error {
	_, flags := parseFlags(args, mergeFlags(formatFlag, outputFlag))
	format := flags["format"]
	if format == "" {
		format = "text"
	}

	var output string
	switch format {
	case "text":
		if path := flags["output"]; path != "" {
			if err := c.service.WriteExport(path); err != nil {
				return err
			}
			c.printf("Exported to %s\n", path)
			return nil
		}
		output = c.service.ExportText()
	case "json":
		var err error
		output, err = c.service.ExportJSON()
		if err != nil {
			return err
		}
		if path := flags["output"]; path != "" {
			if err := os.WriteFile(path, []byte(output), 0644); err != nil {
				return errors.StorageError("export", err).WithContext("path", path)
			}
			c.printf("Exported to %s\n", path)
			return nil
		}
	default:
		return errors.InvalidInputError(fmt.Sprintf("unsupported export format: %s", format))
	}

	c.printf("%s\n", output)
	return nil
}

// handleSave writes the unresolved workspace for later import
func (c *CLI) handleSave(args []string) error {
	positional, flags := parseFlags(args, outputFlag)
	path := flags["output"]
	if path == "" && len(positional) > 0 {
		path = positional[0]
	}
	if path == "" {
		return errors.InvalidCommandError("save", "requires an output file")
	}

	if err := c.service.SaveProject(path); err != nil {
		return err
	}
	c.printf("Saved project to %s\n", path)
	return nil
}

// handleImport replaces the workspace with a project file
func (c *CLI) handleImport(args []string) error {
	if len(args) == 0 {
		return errors.InvalidCommandError("import", "requires a project file")
	}

	result, err := c.service.ImportProject(args[0])
	if result != nil {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", w.Field, w.Message)
		}
	}
	if err != nil {
		return err
	}

	rows, cols := c.service.Size()
	c.printf("Imported %d cells (%d rows x %d cols)\n", len(c.service.Workspace()), rows, cols)
	return nil
}

// copyExport copies the resolved grid, or a single cell, to the clipboard
func (c *CLI) copyExport(args []string) error {
	content := c.service.ExportText()
	if len(args) > 0 {
		nums, err := parseInts("copy", args, "<row>", "<col>")
		if err != nil {
			return err
		}
		content, err = c.service.ResolveCell(nums[0], nums[1])
		if err != nil {
			return err
		}
	}

	if statusMsg, err := c.clip.CopyWithFallback(content); err != nil {
		c.printf("Warning: %v\n", err)
		c.printf("Content not copied to clipboard.\n")
	} else {
		c.printf("%s\n", statusMsg)
	}
	return nil
}

// fillCell prompts for every slot of a cell in order
func (c *CLI) fillCell(args []string) error {
	nums, err := parseInts("fill", args, "<row>", "<col>")
	if err != nil {
		return err
	}
	parts, err := c.service.Bind(nums[0], nums[1])
	if err != nil {
		return err
	}

	ctx := context.Background()
	fields := renderer.Fields(parts)
	if len(fields) == 0 {
		c.printf("Cell has no slots\n")
		return nil
	}

	for _, f := range fields {
		if err := c.fillField(ctx, f); err != nil {
			return err
		}
	}

	text, err := c.service.ResolveCell(nums[0], nums[1])
	if err != nil {
		return err
	}
	c.printf("%s\n", strings.TrimRight(text, " "))
	return nil
}

func (c *CLI) fillField(ctx context.Context, f *renderer.Field) error {
	if f.IsOption() {
		on, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Include %s?", f.Label),
			Default: f.Enabled(),
		})
		if err != nil {
			return err
		}
		if err := f.SetEnabled(on); err != nil {
			return err
		}
		if !on {
			return nil
		}
		v, err := c.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("%s (%s):", f.Label, f.Inner),
			Default:   f.Payload(),
			Validator: validatorFor(f.Inner),
		})
		if err != nil {
			return err
		}
		return rejectIfRefused(f.SetPayload(v))
	}

	cfg := InputConfig{
		Message:   fmt.Sprintf("Slot %d (%s):", f.Index, f.Kind),
		Default:   f.Raw(),
		Validator: validatorFor(f.Kind),
	}
	if f.Kind == placeholder.Color {
		cfg.Help = fmt.Sprintf("leave empty to show %s", placeholder.DefaultColor)
	}
	v, err := c.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	return rejectIfRefused(f.Set(v))
}

// validatorFor returns a prompt validator for slots of kind k, or nil when
// any input is accepted.
func validatorFor(k placeholder.Kind) func(string) error {
	switch k {
	case placeholder.Integer:
		return func(s string) error {
			if !placeholder.ValidInteger(s) {
				return fmt.Errorf("%q is not an integer", s)
			}
			return nil
		}
	case placeholder.Symbol:
		return func(s string) error {
			if !placeholder.ValidSymbol(s) {
				return fmt.Errorf("symbols cannot contain letters or digits")
			}
			return nil
		}
	default:
		return nil
	}
}

func rejectIfRefused(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errors.InvalidInputError("value rejected")
	}
	return nil
}

func (c *CLI) writeJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
