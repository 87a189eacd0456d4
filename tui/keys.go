package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-tempochange/widgets"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	Toggle key.Binding
	Faster key.Binding
	Slower key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Faster: Key("tempo +", "+", "=", "right"),
		Slower: Key("tempo -", "-", "_", "left"),
		Reset:  Key("reset", "r", "0"),
		Help:   Key("help", "?"),
		Quit:   Key("quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Faster, k.Slower, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}

// sections lays out FullHelp for the help panel
func (k keyMap) sections() []widgets.KeySection {
	titles := []string{"Transport", "Tempo", "Other"}
	var out []widgets.KeySection
	for i, group := range k.FullHelp() {
		sec := widgets.KeySection{Title: titles[i]}
		for _, b := range group {
			sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: b.Help().Key, Desc: b.Help().Desc})
		}
		out = append(out, sec)
	}
	return out
}
