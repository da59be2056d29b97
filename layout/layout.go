package layout

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/jroimartin/gocui"
)

// View names.
const (
	PastCmdView = "pastcommand"
	LoggerView  = "logger"
	ManualView  = "manual"
	InputView   = "input"
)

// The last submitted line, waiting to be echoed into the history view.
type cmd struct {
	str   string
	ready bool
	m     sync.Mutex
}

var command cmd = cmd{}

// PastCmd is the ViewManager that logs past command.
type PastCmd struct {
	name string
}

// Input box for commands. submit parses a line and forwards it, returning the
// parse error if the line is not a valid command.
type Input struct {
	name   string
	submit func(line string) error
}

type Logger struct {
	name string
}

type Manual struct {
	name string
	path string
}

func (pc *PastCmd) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom left corner.
	v, err := g.SetView(pc.name, 1, maxY*2/3, maxX/3, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "history"
	v.Autoscroll = true
	v.Wrap = true

	command.m.Lock()
	defer command.m.Unlock()
	if command.ready {
		fmt.Fprintln(v, "> "+command.str)
	}
	command.ready = false
	return nil
}

func (i *Input) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom, full width.
	v, err := g.SetView(i.name, 1, maxY-5, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Wrap = true
	v.Autoscroll = true
	v.Editor = i
	v.Editable = true
	return nil
}

func (l *Logger) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Right side.
	v, err := g.SetView(l.name, maxX/3+1, 1, maxX-1, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "log"
	v.Autoscroll = true
	v.Wrap = true
	return nil
}

func (m *Manual) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Top left corner.
	v, err := g.SetView(m.name, 1, 1, maxX/3, maxY*2/3-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "manual"
	v.Wrap = true
	v.Clear()
	dat, err := os.ReadFile(m.path)
	if err != nil {
		fmt.Fprintln(v, "manual not found: "+m.path)
		return nil
	}
	fmt.Fprintln(v, string(dat))
	return nil
}

func (i *Input) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyEnter:
		s := strings.TrimSpace(v.Buffer())
		err := i.submit(s)
		command.m.Lock()
		command.str = s
		if err != nil {
			command.str = s + "\n" + err.Error()
		}
		command.ready = true
		command.m.Unlock()

		// Reset cursor.
		v.Clear()
		v.SetOrigin(0, 0)
		v.SetCursor(0, 0)

	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	}
}

func SetFocus(name string) func(g *gocui.Gui) error {
	return func(g *gocui.Gui) error {
		_, err := g.SetCurrentView(name)
		return err
	}
}

// submitter parses lines into the command type the channel carries. Sends
// happen on their own goroutine so the GUI loop never blocks on a busy handler.
func submitter(cmd interface{}) (func(string) error, error) {
	switch c := cmd.(type) {
	case chan commands.Command:
		return func(s string) error {
			op, err := commands.CreateCommand(s)
			if err != nil {
				return err
			}
			go func() { c <- op }()
			return nil
		}, nil
	case chan commands.ClientCommand:
		return func(s string) error {
			op, err := commands.CreateClientCommand(s)
			if err != nil {
				return err
			}
			go func() { c <- op }()
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("invalid command channel %T", cmd)
	}
}

// Create a GUI, using the command channel to pass commands to the full node
// or the wallet.
func CreateGui(cmd interface{}, manualPath string) (*gocui.Gui, error) {
	submit, err := submitter(cmd)
	if err != nil {
		return nil, err
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}
	g.Cursor = true

	pc := &PastCmd{name: PastCmdView}
	l := &Logger{name: LoggerView}
	m := &Manual{name: ManualView, path: manualPath}
	input := &Input{name: InputView, submit: submit}
	focus := gocui.ManagerFunc(SetFocus(InputView))
	g.SetManager(pc, input, l, m, focus)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Log prints a line into the logger view, or to the standard logger when
// there is no GUI.
func Log(g *gocui.Gui, msg string) {
	if g == nil {
		log.Println(msg)
		return
	}
	g.Update(func(g *gocui.Gui) error {
		v, err := g.View(LoggerView)
		if err != nil {
			return err
		}
		fmt.Fprintln(v, msg)
		return nil
	})
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
