// gridctl is an interactive terminal grid over the orders API: the same
// inline-edit, selection and bulk-delete flows the web grid offers, driven
// from a line-oriented prompt.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/MBAmbhore007/Order-Tracker/internal/client"
	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
	"github.com/MBAmbhore007/Order-Tracker/internal/form"
	"github.com/MBAmbhore007/Order-Tracker/internal/grid"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	notify := &consoleNotifier{in: stdin}
	api := client.New(cfg.API.BaseURL, cfg.Timeout())
	ctrl := grid.NewController(api, notify)

	ctx := context.Background()
	if err := ctrl.Refresh(ctx); err != nil {
		log.Fatalf("initial fetch from %s failed: %v", cfg.API.BaseURL, err)
	}

	fmt.Println("Order Tracker. Type 'help' for commands.")
	renderGrid(ctrl)

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "list", "refresh":
			if err := ctrl.Refresh(ctx); err == nil {
				renderGrid(ctrl)
			}
		case "select":
			selectRows(ctrl, args[1:])
		case "unselect":
			for _, id := range parseIDs(args[1:]) {
				ctrl.Deselect(id)
			}
		case "clear":
			ctrl.ClearSelection()
		case "sel":
			fmt.Printf("selected: %v\n", ctrl.Selected())
		case "edit":
			inlineEdit(ctx, ctrl, args[1:])
		case "add":
			runForm(ctx, ctrl, stdin, ctrl.NewOrderForm())
		case "editf":
			if f, err := ctrl.EditSelected(); err == nil {
				runForm(ctx, ctrl, stdin, f)
			}
		case "del":
			if err := ctrl.DeleteSelected(ctx); err == nil {
				renderGrid(ctrl)
			}
		case "export":
			exportCSV(ctrl, args[1:])
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, type 'help'\n", args[0])
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  list | refresh          refetch and render the grid
  select <id>...          add rows to the selection
  unselect <id>...        remove rows from the selection
  clear                   clear the selection
  sel                     show selected ids
  edit <id> <col> <val>   inline edit (col: total_amount | status)
  add                     add an order via the form
  editf                   edit the selected order via the form
  del                     delete selected orders (asks for confirmation)
  export <file>           export the grid to CSV
  quit
`)
}

func renderGrid(ctrl *grid.Controller) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("ID", "Customer Name", "Order Date", "Total Amount", "Status")
	for _, o := range ctrl.Rows() {
		table.Append([]string{
			strconv.FormatInt(o.ID, 10),
			o.CustomerName,
			o.OrderDate.String(),
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			string(o.Status),
		})
	}
	if err := table.Render(); err != nil {
		log.Printf("render: %v", err)
	}
}

func parseIDs(args []string) []int64 {
	var ids []int64
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Printf("not an id: %q\n", arg)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func selectRows(ctrl *grid.Controller, args []string) {
	for _, id := range parseIDs(args) {
		if err := ctrl.Select(id); err != nil {
			fmt.Printf("row %d: %v\n", id, err)
		}
	}
	fmt.Printf("selected: %v\n", ctrl.Selected())
}

func inlineEdit(ctx context.Context, ctrl *grid.Controller, args []string) {
	if len(args) != 3 {
		fmt.Println("usage: edit <id> <total_amount|status> <value>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("not an id: %q\n", args[0])
		return
	}
	if err := ctrl.CommitEdit(ctx, id, grid.Field(args[1]), args[2]); err != nil {
		fmt.Printf("edit failed: %v\n", err)
	}
	renderGrid(ctrl)
}

// runForm walks the user through the form fields, re-prompting while any
// field is invalid, then saves. A blank line on every field cancels.
func runForm(ctx context.Context, ctrl *grid.Controller, in *bufio.Reader, f *form.Form) {
	for {
		f.CustomerName = prompt(in, "Customer Name", f.CustomerName)
		f.OrderDate = prompt(in, "Order Date (YYYY-MM-DD)", f.OrderDate)
		f.TotalAmount = prompt(in, "Total Amount", f.TotalAmount)
		f.Status = prompt(in, fmt.Sprintf("Status %v", domain.Statuses()), f.Status)

		errs := f.Validate()
		if len(errs) == 0 {
			break
		}
		for field, msg := range errs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		if f.CustomerName == "" && f.OrderDate == "" && f.TotalAmount == "" {
			fmt.Println("cancelled")
			return
		}
	}

	if err := ctrl.SaveForm(ctx, f); err == nil {
		renderGrid(ctrl)
	}
}

func prompt(in *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func exportCSV(ctrl *grid.Controller, args []string) {
	name := "orders.csv"
	if len(args) > 0 {
		name = args[0]
	}
	file, err := os.Create(name)
	if err != nil {
		fmt.Printf("export failed: %v\n", err)
		return
	}
	defer file.Close()
	if err := ctrl.ExportCSV(file); err != nil {
		fmt.Printf("export failed: %v\n", err)
		return
	}
	fmt.Printf("exported %d rows to %s\n", len(ctrl.Rows()), name)
}

// consoleNotifier implements grid.Notifier on the terminal.
type consoleNotifier struct {
	in *bufio.Reader
}

func (n *consoleNotifier) Alert(message string) {
	fmt.Printf("[!] %s\n", message)
}

func (n *consoleNotifier) Confirm(message string) bool {
	fmt.Printf("%s [y/N]: ", message)
	line, err := n.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
