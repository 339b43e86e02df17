package tui

import (
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hylla/wishlist/internal/adapters/remote"
	"github.com/hylla/wishlist/internal/domain"
	"github.com/hylla/wishlist/internal/tui/menuoptions"
)

// rowAction is a per-row popover action.
type rowAction int

const (
	rowOpen rowAction = iota
	rowEdit
	rowDelete
	rowCopyID
)

const statusReloading = "reloading..."

// listsLoadedMsg carries one fetch result tagged with the generation and revision it was issued under.
type listsLoadedMsg struct {
	generation int
	revision   int
	refresh    bool
	lists      []domain.List
	err        error
}

// listRefreshedMsg carries one by-id read issued when a detail view opened.
type listRefreshedMsg struct {
	generation int
	revision   int
	id         string
	list       domain.List
	err        error
}

// listDeletedMsg carries one remote delete result.
type listDeletedMsg struct {
	generation int
	id         string
	err        error
}

// listCreatedMsg carries a list the remote confirmed as created.
type listCreatedMsg struct {
	generation int
	list       domain.List
}

// listUpdatedMsg carries a list the remote confirmed as updated.
type listUpdatedMsg struct {
	generation int
	list       domain.List
}

// formFailedMsg carries a rejected form submit.
type formFailedMsg struct {
	generation int
	err        error
}

// rowActionMsg carries a popover choice for lists[index].
type rowActionMsg struct {
	generation int
	action     rowAction
	index      int
	id         string
}

// idCopiedMsg carries one clipboard write result.
type idCopiedMsg struct {
	id  string
	err error
}

// ListsModel owns the visitor's list collection and which overlay is presented above it.
type ListsModel struct {
	svc     ListService
	opts    options
	onClose func() tea.Cmd

	width  int
	height int

	help    help.Model
	keys    keyMap
	spinner spinner.Model
	md      *markdownRenderer

	lists     []domain.List
	loading   bool
	overlay   overlay
	cursor    int
	filter    textinput.Model
	filtering bool
	form      listForm
	menu      menuoptions.Model
	status    string

	live       bool
	generation int
	revision   int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewListsModel constructs an inactive controller. onClose runs when the user leaves the overview.
func NewListsModel(svc ListService, onClose func() tea.Cmd, opts ...Option) ListsModel {
	h := help.New()
	h.ShowAll = false
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter lists"
	filter.CharLimit = domain.MaxListNameLength
	o := applyOptions(opts)
	keys := newKeyMap()
	keys.applyConfig(o.keys)
	return ListsModel{
		svc:     svc,
		opts:    o,
		onClose: onClose,
		help:    h,
		keys:    keys,
		spinner: sp,
		md:      newMarkdownRenderer(o.markdownStyle),
		loading: true,
		overlay: noOverlay{},
		filter:  filter,
		menu:    menuoptions.New(nil, 0),
	}
}

// Lists returns a copy of the collection.
func (m ListsModel) Lists() []domain.List {
	return slices.Clone(m.lists)
}

// Loading reports whether the initial fetch is outstanding.
func (m ListsModel) Loading() bool {
	return m.loading
}

// VisibleOverlay reports the presented overlay.
func (m ListsModel) VisibleOverlay() OverlayKind {
	return m.overlay.kind()
}

// SelectedIndex returns the index captured by the update or detail overlay, else -1.
func (m ListsModel) SelectedIndex() int {
	idx, _ := selection(m.overlay)
	return idx
}

// Live reports whether the controller is between Activate and Deactivate.
func (m ListsModel) Live() bool {
	return m.live
}

// Activate marks the controller live, takes the modal-open class and starts the initial fetch.
func (m *ListsModel) Activate() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.live = true
	m.loading = true
	m.lists = nil
	m.overlay = noOverlay{}
	m.cursor = 0
	m.status = ""
	m.filtering = false
	m.filter.SetValue("")
	m.menu.Close()
	m.opts.document.AddClass(ModalOpenClass)
	return tea.Batch(m.loadLists(false), m.spinner.Tick)
}

// Deactivate cancels in-flight work and releases the modal-open class. Results arriving later are ignored.
func (m *ListsModel) Deactivate() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.live {
		m.generation++
	}
	m.live = false
	m.opts.document.RemoveClass(ModalOpenClass)
}

// accepts reports whether an async result issued under generation may still touch state.
func (m ListsModel) accepts(generation int) bool {
	return m.live && generation == m.generation
}

// requestContext derives the per-request context from the activation context.
func (m ListsModel) requestContext() (context.Context, context.CancelFunc) {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.opts.requestTimeout)
}

// loadLists fetches the visitor's lists. refresh bypasses a local cache when the service has one.
func (m ListsModel) loadLists(refresh bool) tea.Cmd {
	if !m.live || m.svc == nil {
		return nil
	}
	svc := m.svc
	generation, revision := m.generation, m.revision
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		fetch := svc.FetchListsForVisitor
		if r, ok := svc.(listRefresher); ok && refresh {
			fetch = r.RefreshListsForVisitor
		}
		envelopes, err := fetch(ctx)
		if err != nil {
			return listsLoadedMsg{generation: generation, revision: revision, refresh: refresh, err: err}
		}
		return listsLoadedMsg{generation: generation, revision: revision, refresh: refresh, lists: remote.ProjectLists(envelopes)}
	}
}

// refreshList re-reads one list so the detail view shows its current items.
func (m ListsModel) refreshList(id string) tea.Cmd {
	if !m.live || m.svc == nil || strings.TrimSpace(id) == "" {
		return nil
	}
	svc := m.svc
	generation, revision := m.generation, m.revision
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		list, err := svc.GetList(ctx, id)
		return listRefreshedMsg{generation: generation, revision: revision, id: id, list: list, err: err}
	}
}

// deleteList removes the list remotely; only a confirmed delete touches the collection.
func (m ListsModel) deleteList(id string) tea.Cmd {
	if !m.live || m.svc == nil || strings.TrimSpace(id) == "" {
		return nil
	}
	svc := m.svc
	generation := m.generation
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		return listDeletedMsg{generation: generation, id: id, err: svc.DeleteList(ctx, id)}
	}
}

// createList appends a confirmed list and closes the create form.
func (m *ListsModel) createList(list domain.List) {
	if idx := m.indexOf(list.ID); idx >= 0 {
		m.lists = slices.Clone(m.lists)
		m.lists[idx] = list
	} else {
		m.lists = append(m.lists, list)
	}
	m.revision++
	if m.overlay.kind() == OverlayCreate {
		m.overlay = noOverlay{}
	}
}

// updateList replaces the list at the update overlay's index and closes the form.
// Without an open update overlay the list is matched by id.
func (m *ListsModel) updateList(list domain.List) {
	idx := -1
	if o, ok := m.overlay.(updateOverlay); ok && o.index >= 0 && o.index < len(m.lists) {
		idx = o.index
	} else {
		idx = m.indexOf(list.ID)
	}
	if idx >= 0 {
		m.lists = slices.Clone(m.lists)
		m.lists[idx] = list
		m.revision++
	}
	if m.overlay.kind() == OverlayUpdate {
		m.overlay = noOverlay{}
	}
}

// removeList drops exactly the list with id and keeps any open selection pinned to its list.
func (m *ListsModel) removeList(id string) {
	idx := m.indexOf(id)
	if idx < 0 {
		return
	}
	m.lists = append(m.lists[:idx:idx], m.lists[idx+1:]...)
	m.revision++
	if m.overlay.kind() == OverlayDetail {
		m.overlay = noOverlay{}
	}
	m.resolveSelection()
	m.cursor = clamp(m.cursor, 0, len(m.visibleRows())-1)
}

// resolveSelection re-derives the selected index from the selected id after the collection changed.
func (m *ListsModel) resolveSelection() {
	idx, id := selection(m.overlay)
	if idx < 0 {
		return
	}
	resolved := m.indexOf(id)
	if resolved < 0 {
		m.overlay = noOverlay{}
		return
	}
	m.overlay = withIndex(m.overlay, resolved)
}

// openCreate shows the create form.
func (m *ListsModel) openCreate() tea.Cmd {
	form, cmd := newListForm(nil)
	m.form = form
	m.overlay = createOverlay{}
	return cmd
}

// selectForUpdate shows the update form for lists[index].
func (m *ListsModel) selectForUpdate(index int) tea.Cmd {
	if index < 0 || index >= len(m.lists) {
		return nil
	}
	list := m.lists[index]
	form, cmd := newListForm(&list)
	m.form = form
	m.overlay = updateOverlay{index: index, id: list.ID}
	return cmd
}

// selectForDetail shows the detail view for lists[index].
func (m *ListsModel) selectForDetail(index int) {
	if index < 0 || index >= len(m.lists) {
		return
	}
	m.overlay = detailOverlay{index: index, id: m.lists[index].ID}
}

// openDetail shows the detail view for lists[index] and refreshes that list by id.
func (m *ListsModel) openDetail(index int) tea.Cmd {
	m.selectForDetail(index)
	if m.overlay.kind() != OverlayDetail {
		return nil
	}
	_, id := selection(m.overlay)
	return m.refreshList(id)
}

func (m *ListsModel) closeOverlay() {
	m.overlay = noOverlay{}
}

func (m ListsModel) indexOf(id string) int {
	return slices.IndexFunc(m.lists, func(list domain.List) bool {
		return list.ID == id
	})
}

// visibleRows returns lists indexes matching the filter, in collection order.
func (m ListsModel) visibleRows() []int {
	query := strings.TrimSpace(m.filter.Value())
	rows := make([]int, 0, len(m.lists))
	if query == "" {
		for idx := range m.lists {
			rows = append(rows, idx)
		}
		return rows
	}
	names := make([]string, len(m.lists))
	for idx, list := range m.lists {
		names[idx] = list.Name
	}
	matched := map[int]struct{}{}
	for _, rank := range fuzzy.RankFindNormalizedFold(query, names) {
		matched[rank.OriginalIndex] = struct{}{}
	}
	for idx := range m.lists {
		if _, ok := matched[idx]; ok {
			rows = append(rows, idx)
		}
	}
	return rows
}

// cursorIndex maps the highlighted row to its lists index, or -1.
func (m ListsModel) cursorIndex() int {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return -1
	}
	return rows[m.cursor]
}

// Update applies one message.
func (m ListsModel) Update(msg tea.Msg) (ListsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.live || !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listsLoadedMsg:
		if !m.accepts(msg.generation) {
			return m, nil
		}
		if msg.revision < m.revision {
			m.opts.logger.Debug("discarding stale list fetch", "issued_revision", msg.revision, "revision", m.revision)
			if m.loading {
				return m, m.loadLists(false)
			}
			if m.status == statusReloading {
				m.status = ""
			}
			return m, nil
		}
		initial := m.loading && !msg.refresh
		m.loading = false
		if msg.err != nil {
			m.opts.logger.Debug("load lists failed", "err", msg.err, "refresh", msg.refresh)
			if !initial {
				// Confirmed lists survive a failed reload.
				m.status = "reload failed"
				return m, nil
			}
			m.lists = nil
			m.cursor = 0
			return m, nil
		}
		if m.status == statusReloading {
			m.status = ""
		}
		m.lists = msg.lists
		m.resolveSelection()
		m.cursor = clamp(m.cursor, 0, len(m.visibleRows())-1)
		return m, nil

	case listRefreshedMsg:
		if !m.accepts(msg.generation) || msg.revision != m.revision {
			return m, nil
		}
		if msg.err != nil {
			if remote.IsNotFound(msg.err) {
				m.removeList(msg.id)
				m.status = "list no longer exists"
				return m, nil
			}
			m.opts.logger.Debug("refresh list failed", "id", msg.id, "err", msg.err)
			return m, nil
		}
		if idx := m.indexOf(msg.id); idx >= 0 {
			m.lists = slices.Clone(m.lists)
			m.lists[idx] = msg.list
			m.revision++
		}
		return m, nil

	case listDeletedMsg:
		if !m.accepts(msg.generation) {
			return m, nil
		}
		if msg.err != nil {
			m.opts.logger.Error("delete list failed", "id", msg.id, "err", msg.err)
			m.status = "delete failed"
			return m, nil
		}
		m.removeList(msg.id)
		m.status = "list deleted"
		return m, nil

	case listCreatedMsg:
		if !m.accepts(msg.generation) {
			return m, nil
		}
		m.createList(msg.list)
		m.status = "list created"
		return m, nil

	case listUpdatedMsg:
		if !m.accepts(msg.generation) {
			return m, nil
		}
		m.updateList(msg.list)
		m.status = "list updated"
		return m, nil

	case formFailedMsg:
		if !m.accepts(msg.generation) {
			return m, nil
		}
		if kind := m.overlay.kind(); kind == OverlayCreate || kind == OverlayUpdate {
			m.form.submitting = false
			m.form.err = msg.err.Error()
		}
		return m, nil

	case rowActionMsg:
		if !m.accepts(msg.generation) || msg.index < 0 || msg.index >= len(m.lists) || m.lists[msg.index].ID != msg.id {
			return m, nil
		}
		return m.applyRowAction(msg.action, msg.index)

	case idCopiedMsg:
		if msg.err != nil {
			m.opts.logger.Debug("copy list id failed", "id", msg.id, "err", msg.err)
			m.status = "copy failed"
			return m, nil
		}
		m.status = "copied " + msg.id
		return m, nil

	case tea.KeyPressMsg:
		if !m.live {
			return m, nil
		}
		switch m.overlay.(type) {
		case createOverlay, updateOverlay:
			return m.handleFormKey(msg)
		case detailOverlay:
			return m.handleDetailKey(msg)
		default:
			return m.handleOverviewKey(msg)
		}
	}
	return m, nil
}

func (m ListsModel) applyRowAction(action rowAction, index int) (ListsModel, tea.Cmd) {
	switch action {
	case rowOpen:
		cmd := m.openDetail(index)
		return m, cmd
	case rowEdit:
		cmd := m.selectForUpdate(index)
		return m, cmd
	case rowDelete:
		return m, m.deleteList(m.lists[index].ID)
	case rowCopyID:
		return m, m.copyID(m.lists[index].ID)
	}
	return m, nil
}

func (m ListsModel) copyID(id string) tea.Cmd {
	copyText := m.opts.copyText
	return func() tea.Msg {
		return idCopiedMsg{id: id, err: copyText(id)}
	}
}

// rowMenu builds the popover for lists[index].
func (m ListsModel) rowMenu(index int) menuoptions.Model {
	generation := m.generation
	id := m.lists[index].ID
	option := func(label string, action rowAction) menuoptions.Option {
		return menuoptions.Option{Label: label, Effect: func() tea.Cmd {
			return func() tea.Msg {
				return rowActionMsg{generation: generation, action: action, index: index, id: id}
			}
		}}
	}
	menu := menuoptions.New([]menuoptions.Option{
		option("Open", rowOpen),
		option("Edit", rowEdit),
		option("Delete", rowDelete),
		option("Copy ID", rowCopyID),
	}, 0)
	menu.Open()
	return menu
}

func (m ListsModel) handleOverviewKey(msg tea.KeyPressMsg) (ListsModel, tea.Cmd) {
	if m.menu.IsOpen() {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	rows := m.visibleRows()
	switch {
	case key.Matches(msg, m.keys.close):
		if strings.TrimSpace(m.filter.Value()) != "" && msg.String() == "esc" {
			m.filter.SetValue("")
			m.cursor = clamp(m.cursor, 0, len(m.lists)-1)
			return m, nil
		}
		if m.onClose == nil {
			return m, nil
		}
		return m, m.onClose()
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.status = statusReloading
		return m, m.loadLists(true)
	case key.Matches(msg, m.keys.moveUp):
		m.cursor = clamp(m.cursor-1, 0, len(rows)-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.cursor = clamp(m.cursor+1, 0, len(rows)-1)
		return m, nil
	case key.Matches(msg, m.keys.addList):
		cmd := m.openCreate()
		return m, cmd
	case key.Matches(msg, m.keys.filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	}

	idx := m.cursorIndex()
	if idx < 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.openList):
		cmd := m.openDetail(idx)
		return m, cmd
	case key.Matches(msg, m.keys.editList):
		cmd := m.selectForUpdate(idx)
		return m, cmd
	case key.Matches(msg, m.keys.deleteList):
		return m, m.deleteList(m.lists[idx].ID)
	case key.Matches(msg, m.keys.copyID):
		return m, m.copyID(m.lists[idx].ID)
	case key.Matches(msg, m.keys.actions):
		m.menu = m.rowMenu(idx)
	}
	return m, nil
}

func (m ListsModel) handleFilterKey(msg tea.KeyPressMsg) (ListsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.cursor = 0
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = clamp(m.cursor, 0, len(m.visibleRows())-1)
	return m, cmd
}

func (m ListsModel) handleDetailKey(msg tea.KeyPressMsg) (ListsModel, tea.Cmd) {
	idx, id := selection(m.overlay)
	switch {
	case key.Matches(msg, m.keys.close):
		m.closeOverlay()
	case key.Matches(msg, m.keys.editList):
		cmd := m.selectForUpdate(idx)
		return m, cmd
	case key.Matches(msg, m.keys.deleteList):
		return m, m.deleteList(id)
	case key.Matches(msg, m.keys.copyID):
		return m, m.copyID(id)
	}
	return m, nil
}

func (m ListsModel) handleFormKey(msg tea.KeyPressMsg) (ListsModel, tea.Cmd) {
	form, cmd, action := m.form.Update(msg)
	m.form = form
	switch action {
	case formActionCancel:
		m.closeOverlay()
		return m, nil
	case formActionSubmit:
		return m.submitForm()
	}
	return m, cmd
}

// submitForm sends the form to the remote; the overlay stays open until the result arrives.
func (m ListsModel) submitForm() (ListsModel, tea.Cmd) {
	if problem := m.form.validate(); problem != "" {
		m.form.err = problem
		return m, nil
	}
	if m.svc == nil {
		return m, nil
	}
	values := m.form.values()
	svc := m.svc
	generation := m.generation
	ctx, cancel := m.requestContext()
	m.form.submitting = true
	m.form.err = ""

	if o, ok := m.overlay.(updateOverlay); ok {
		in := remote.UpdateListInput{ListID: o.id, Name: values.Name, Description: values.Description, Public: values.Public}
		return m, func() tea.Msg {
			defer cancel()
			list, err := svc.UpdateList(ctx, in)
			if err != nil {
				return formFailedMsg{generation: generation, err: err}
			}
			return listUpdatedMsg{generation: generation, list: list}
		}
	}
	in := remote.CreateListInput{Name: values.Name, Description: values.Description, Public: values.Public}
	return m, func() tea.Msg {
		defer cancel()
		list, err := svc.CreateList(ctx, in)
		if err != nil {
			return formFailedMsg{generation: generation, err: err}
		}
		return listCreatedMsg{generation: generation, list: list}
	}
}

// View renders the overview with any overlay centered above it.
func (m ListsModel) View() string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(accent)

	header := titleStyle.Render("My lists") + "  " + hintStyle.Render("n add • q close")
	sections := []string{header, ""}
	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" loading lists...")
	case len(m.lists) == 0:
		sections = append(sections, "No lists yet.", hintStyle.Render("Press "+m.keys.addList.Help().Key+" to create one."))
	default:
		if m.filtering || strings.TrimSpace(m.filter.Value()) != "" {
			sections = append(sections, m.filter.View(), "")
		}
		rows := m.visibleRows()
		if len(rows) == 0 {
			sections = append(sections, hintStyle.Render("no lists match"))
		}
		nameWidth := clamp(m.width-30, 16, 60)
		for pos, idx := range rows {
			list := m.lists[idx]
			line := truncate(list.Name, nameWidth)
			var badges []string
			if idx == 0 {
				badges = append(badges, "default")
			}
			if list.Public {
				badges = append(badges, "public")
			}
			if m.opts.showItemCounts {
				badges = append(badges, itemCountLabel(list.ItemCount()))
			}
			if len(badges) > 0 {
				line += "  " + badgeStyle.Render(strings.Join(badges, " • "))
			}
			if pos == m.cursor {
				line = selectedStyle.Render("› ") + line + " " + m.menuTrigger()
			} else {
				line = "  " + line
			}
			sections = append(sections, line)
		}
	}
	if strings.TrimSpace(m.status) != "" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	full := content + "\n" + helpLine

	if overlay := m.renderOverlay(accent, muted); overlay != "" {
		return overlayOnContent(full, overlay, max(1, m.width), max(1, lipgloss.Height(full)))
	}
	return full
}

func (m ListsModel) menuTrigger() string {
	if m.menu.IsOpen() {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("⋯")
}

func (m ListsModel) renderOverlay(accent, muted color.Color) string {
	width := m.width - 8
	switch o := m.overlay.(type) {
	case createOverlay, updateOverlay:
		return m.form.View(width, accent, muted)
	case detailOverlay:
		if o.index < 0 || o.index >= len(m.lists) {
			return ""
		}
		return m.renderDetail(o.index, width, accent, muted)
	}
	if m.menu.IsOpen() {
		return m.menu.View()
	}
	return ""
}

func itemCountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
