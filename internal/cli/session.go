// Interactive inventory session: the start menu, the operation menu, and
// the prompts behind each operation.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Operation menu choices.
const (
	opAddItem = iota + 1
	opIncrease
	opDecrease
	opRemove
	opReset
	opResetAll
	opClear
	opDisplay
	opSearch
	opSaveExit
)

// errQuit ends the session from any prompt.
var errQuit = errors.New("quit")

// session drives one interactive run over in and out.
type session struct {
	in      *bufio.Scanner
	out     io.Writer
	dataDir string
	opts    []types.Option
}

func newSession(in io.Reader, out io.Writer, dataDir string, opts ...types.Option) *session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), store.MaxLineSize)
	return &session{
		in:      scanner,
		out:     out,
		dataDir: dataDir,
		opts:    opts,
	}
}

// Run processes inventories until the user quits or input ends.
func (s *session) Run() error {
	err := s.run()
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *session) run() error {
	for {
		inv, err := s.startInventory()
		if err != nil {
			return err
		}
		if inv == nil {
			fmt.Fprintln(s.out, "Error generating new inventory.")
		} else if err := s.process(inv); err != nil {
			return err
		}

		again, err := s.prompt("Process a new inventory? (Y/N) ")
		if err != nil {
			return err
		}
		if !strings.HasPrefix(strings.ToUpper(again), "Y") {
			return nil
		}
	}
}

// prompt prints label and returns the next input line. Returns io.EOF when
// input is exhausted.
func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// promptInt re-prompts until the input is a whole number.
func (s *session) promptInt(label string) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "Please enter a whole number.")
	}
}

// startInventory shows the start menu and returns a loaded or new
// inventory. A nil inventory with a nil error means loading or creation
// failed.
func (s *session) startInventory() (*types.Inventory, error) {
	fmt.Fprintln(s.out, "START MENU OPTIONS:")
	fmt.Fprintln(s.out, "1. (L)oad an existing inventory from a file.")
	fmt.Fprintln(s.out, "2. (C)reate a new inventory.")
	fmt.Fprintln(s.out, "3. (Q)uit.")

	for {
		line, err := s.prompt("Enter your choice: ")
		if err != nil {
			return nil, err
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "L", "1":
			return s.loadInventory()
		case "C", "2":
			name, err := s.prompt("Enter a name for the inventory: ")
			if err != nil {
				return nil, err
			}
			inv, err := types.NewInventory(name, s.opts...)
			if err != nil {
				fmt.Fprintln(s.out, err)
				return nil, nil
			}
			return inv, nil
		case "Q", "3":
			return nil, errQuit
		}
	}
}

func (s *session) loadInventory() (*types.Inventory, error) {
	file, err := s.prompt("Enter the path where the inventory is found: ")
	if err != nil {
		return nil, err
	}
	path := paths.ResolveInventoryFile(s.dataDir, strings.TrimSpace(file))
	inv, err := store.Load(path, s.opts...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return nil, nil
	}
	return inv, nil
}

func (s *session) showOperationMenu() {
	fmt.Fprintln(s.out, "Inventory operations are as follows:")
	fmt.Fprintln(s.out, "1.  Add a new item to the inventory.")
	fmt.Fprintln(s.out, "2.  Add a quantity to an existing item.")
	fmt.Fprintln(s.out, "3.  Remove a quantity from an existing item.")
	fmt.Fprintln(s.out, "4.  Remove an existing item from the inventory.")
	fmt.Fprintln(s.out, "5.  Reset an existing item quantity.")
	fmt.Fprintln(s.out, "6.  Reset all item quantities.")
	fmt.Fprintln(s.out, "7.  Clear all items from the inventory.")
	fmt.Fprintln(s.out, "8.  Display all existing items in the inventory.")
	fmt.Fprintln(s.out, "9.  Search for an existing item.")
	fmt.Fprintln(s.out, "10. Exit and save inventory to a file.")
}

// process runs the operation menu until the inventory is saved.
func (s *session) process(inv *types.Inventory) error {
	for {
		s.showOperationMenu()
		var choice int
		for {
			n, err := s.promptInt("Enter your choice: ")
			if err != nil {
				return err
			}
			if n >= opAddItem && n <= opSaveExit {
				choice = n
				break
			}
		}

		done, err := s.perform(inv, choice)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// perform executes one menu choice. It reports done once the inventory has
// been saved. Only input errors are returned; operation failures are shown
// and the session continues.
func (s *session) perform(inv *types.Inventory, choice int) (bool, error) {
	var opErr error
	switch choice {
	case opAddItem:
		desc, err := s.prompt("Enter the item's info: ")
		if err != nil {
			return false, err
		}
		qty, err := s.promptInt("Enter the item quantity: ")
		if err != nil {
			return false, err
		}
		item, err := types.NewItem(desc, qty)
		if err != nil {
			opErr = err
			break
		}
		opErr = inv.AddItem(item)
	case opIncrease:
		key, amount, err := s.promptKeyAmount("Enter the item name to add a quantity to: ", "Enter the amount to add to the item: ")
		if err != nil {
			return false, err
		}
		opErr = inv.IncreaseItem(key, amount)
	case opDecrease:
		key, amount, err := s.promptKeyAmount("Enter the item name to remove a quantity from: ", "Enter the amount to remove from the item: ")
		if err != nil {
			return false, err
		}
		opErr = inv.DecreaseItem(key, amount)
	case opRemove:
		key, err := s.prompt("Enter the item name to remove from the inventory: ")
		if err != nil {
			return false, err
		}
		opErr = inv.RemoveItem(key)
	case opReset:
		key, err := s.prompt("Enter the item name to reset the quantity of: ")
		if err != nil {
			return false, err
		}
		opErr = inv.ResetItem(key)
	case opResetAll:
		inv.ResetAll()
	case opClear:
		inv.Clear()
	case opDisplay:
		renderTable(s.out, inv)
	case opSearch:
		key, err := s.prompt("What item do you want to search for? ")
		if err != nil {
			return false, err
		}
		item, _ := inv.Search(key)
		if item == nil {
			fmt.Fprintln(s.out, msgNotFound)
		} else {
			fmt.Fprintf(s.out, "Item found: \n%s\n", item)
		}
	case opSaveExit:
		return s.save(inv)
	}

	if opErr != nil {
		s.report(opErr)
	}
	return false, nil
}

func (s *session) promptKeyAmount(keyLabel, amountLabel string) (string, int, error) {
	key, err := s.prompt(keyLabel)
	if err != nil {
		return "", 0, err
	}
	amount, err := s.promptInt(amountLabel)
	if err != nil {
		return "", 0, err
	}
	return key, amount, nil
}

// save asks where to write the inventory. A failed write is reported and
// the session returns to the operation menu with the inventory intact.
func (s *session) save(inv *types.Inventory) (bool, error) {
	dir, err := s.prompt("Enter the save directory for the inventory: ")
	if err != nil {
		return false, err
	}
	name, err := s.prompt("Enter the save name for the inventory: ")
	if err != nil {
		return false, err
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = s.dataDir
	}
	path, err := store.Save(inv, dir, strings.TrimSpace(name))
	if err != nil {
		fmt.Fprintln(s.out, "Save failed:", err)
		return false, nil
	}
	fmt.Fprintf(s.out, "Inventory saved to %s\n", path)
	return true, nil
}

// report prints a user-facing message for an operation failure.
func (s *session) report(err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		fmt.Fprintln(s.out, msgNotFound)
	case errors.Is(err, types.ErrInvalidQuantity):
		fmt.Fprintln(s.out, "Cannot have a negative number of items.")
	case errors.Is(err, types.ErrInvalidAmount):
		fmt.Fprintln(s.out, "Amount cannot be negative.")
	case errors.Is(err, types.ErrInsufficientQuantity):
		fmt.Fprintln(s.out, "Cannot remove more items than exist.")
	default:
		fmt.Fprintln(s.out, "Error:", err)
	}
}
