package site

import "strconv"

// OpenClass marks the expanded mobile menu.
const OpenClass = "open"

// NavToggle opens and closes the mobile navigation menu and keeps the toggle's
// aria-expanded attribute in step with the menu state.
type NavToggle struct {
	menu   ClassList
	toggle AttributeSetter
}

// NewNavToggle returns a NavToggle for the given menu and toggle control.
func NewNavToggle(menu ClassList, toggle AttributeSetter) *NavToggle {
	return &NavToggle{menu: menu, toggle: toggle}
}

// Toggle handles a click on the toggle control and reports whether the menu is open.
func (n *NavToggle) Toggle() bool {
	open := n.menu.Toggle(OpenClass)
	n.toggle.SetAttribute("aria-expanded", strconv.FormatBool(open))
	return open
}

// MenuClicked handles a click inside the menu. Only clicks on links close it.
func (n *NavToggle) MenuClicked(onLink bool) {
	if !onLink {
		return
	}
	n.menu.Remove(OpenClass)
	n.toggle.SetAttribute("aria-expanded", "false")
}
