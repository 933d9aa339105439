// Package menu runs the numbered text menu over a pantry: add an item, view
// the inventory, delete an item, or exit. Exiting saves both stores.
//
// The menu owns all prompting and re-prompting; it only hands validated
// values to the pantry.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// errEndOfInput stops the loop when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// Main menu choices.
const (
	choiceAdd = iota + 1
	choiceView
	choiceDelete
	choiceExit
)

// Menu drives one interactive session.
type Menu struct {
	pantry types.Pantry
	in     *bufio.Scanner
	out    io.Writer

	// Now supplies the date used to render expiry status.
	Now func() time.Time
}

// New builds a menu reading answers from in and writing prompts to out.
func New(p types.Pantry, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		pantry: p,
		in:     bufio.NewScanner(in),
		out:    out,
		Now:    time.Now,
	}
}

// Run loops until the user picks Exit or input ends, then saves. The only
// errors returned are read failures and the save result.
func (m *Menu) Run() error {
	for {
		m.printf("\nOptions:\n1. Add an item\n2. View inventory\n3. Delete an item\n4. Exit\n")

		line, err := m.prompt("\nEnter your choice (1-4): ")
		if err != nil {
			return m.finish(err)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			m.printf("Please enter a valid number.\n")
			continue
		}

		switch choice {
		case choiceAdd:
			err = m.addItem()
		case choiceView:
			m.viewInventory()
		case choiceDelete:
			err = m.deleteItem()
		case choiceExit:
			return m.finish(nil)
		default:
			m.printf("Invalid choice. Please try again.\n")
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

// finish saves on a clean exit or end of input. Read errors are returned
// without saving.
func (m *Menu) finish(err error) error {
	if err != nil && !errors.Is(err, errEndOfInput) {
		return err
	}
	m.printf("Exiting program...\n")
	return m.pantry.Save()
}

func (m *Menu) addItem() error {
	m.printf("\nAdding a new item:\n")
	category, err := m.chooseCategory()
	if err != nil {
		return err
	}

	name, err := m.prompt("Enter item name: ")
	if err != nil {
		return err
	}

	var quantity int
	for {
		line, err := m.prompt("Enter quantity: ")
		if err != nil {
			return err
		}
		if quantity, err = types.ParseQuantity(line); err == nil {
			break
		}
		m.printf("Quantity must be a non-negative integer.\n")
	}

	unit, err := m.prompt("Enter unit (e.g., ml, pieces): ")
	if err != nil {
		return err
	}
	unit = strings.ToLower(unit)

	var expiry time.Time
	for {
		line, err := m.prompt("Enter expiry date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		if expiry, err = types.ParseExpiry(line); err == nil {
			break
		}
		m.printf("Invalid date format. Try again.\n")
	}

	it, err := m.pantry.AddItem(category, name, quantity, unit, expiry)
	if err != nil {
		m.printf("Error: %v\n", err)
		return nil
	}
	m.printf("Added '%s' to %s.\n", it.Name, category)
	return nil
}

// chooseCategory lists existing categories plus a "create new" entry and
// loops until a valid choice is made.
func (m *Menu) chooseCategory() (string, error) {
	categories := m.pantry.Categories()

	m.printf("\nCategories available:\n")
	for i, c := range categories {
		m.printf("%d. %s\n", i+1, c)
	}
	create := len(categories) + 1
	m.printf("\n%d. Create new category\n", create)

	for {
		line, err := m.prompt("Enter the number of the category or create a new one: ")
		if err != nil {
			return "", err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			m.printf("Please enter a number.\n")
			continue
		}

		switch {
		case choice > 0 && choice <= len(categories):
			return categories[choice-1], nil
		case choice == create:
			name, err := m.prompt("Enter new category name: ")
			if err != nil {
				return "", err
			}
			if err := m.pantry.CreateCategory(name); err != nil {
				if errors.Is(err, types.ErrCategoryExists) {
					m.printf("Category already exists!\n")
					continue
				}
				return "", err
			}
			return name, nil
		default:
			m.printf("Invalid option. Please choose again.\n")
		}
	}
}

func (m *Menu) viewInventory() {
	groups := m.pantry.ListAll()
	if len(groups) == 0 {
		m.printf("\nPantry is empty!\n")
		return
	}

	now := m.Now()
	m.printf("\nInventory:\n")
	for _, g := range groups {
		m.printf("\n%s\n%s\n", capitalize(g.Category), strings.Repeat("=", 50))
		for _, it := range g.Items {
			m.printf("%s\n", it.Render(now))
		}
	}
}

func (m *Menu) deleteItem() error {
	if len(m.pantry.ListAll()) == 0 {
		m.printf("\nPantry is empty!\n")
		return nil
	}

	line, err := m.prompt("Enter the name of the item to remove: ")
	if err != nil {
		return err
	}
	name := strings.ToLower(line)

	it, err := m.pantry.FindItem(name)
	if err != nil {
		m.printf("'%s' not found.\n", name)
		return nil
	}
	m.printf("Found '%s' with quantity %d\n", it.Name, it.Quantity)

	var amount types.Amount
	for {
		line, err := m.prompt("Enter quantity to remove (or 'all' to remove everything): ")
		if err != nil {
			return err
		}
		amount, err = types.ParseAmount(line)
		if err == nil {
			break
		}
		if _, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil {
			m.printf("Please enter a positive number.\n")
		} else {
			m.printf("Please enter a valid number or 'all'.\n")
		}
	}

	res, err := m.pantry.RemoveQuantity(name, amount)
	if err != nil {
		m.printf("Error: %v\n", err)
		return nil
	}
	if res.Deleted {
		m.printf("Removed all of '%s' successfully.\n", res.Name)
	} else {
		m.printf("Removed %d of '%s'. %d remaining.\n", res.Removed, res.Name, res.Remaining)
	}
	return nil
}

// prompt writes label and returns the next input line without its line
// ending.
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		m.printf("\n")
		return "", errEndOfInput
	}
	return strings.TrimRight(m.in.Text(), "\r"), nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
