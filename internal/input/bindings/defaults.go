package bindings

// Fallback binding re-established by UnbindAll.
const (
	fallbackKey    = "enter"
	fallbackAction = "chat"
)

// statefulCommands are continuous-input actions (camera movement, map
// drawing) that must keep firing no matter which modifiers are held; Bind
// forces their chain tail into wildcard-modifier form.
var statefulCommands = []string{
	"drawinmap",
	"moveforward",
	"moveback",
	"moveright",
	"moveleft",
	"moveup",
	"movedown",
	"moveslow",
	"movefast",
	"movetilt",
	"movereset",
	"moverotate",
}

type defaultBinding struct {
	key    string
	action string
}

var defaultBindings = []defaultBinding{
	{"esc", "quitmessage"},
	{"Shift+esc", "quitmenu"},
	{"Ctrl+Shift+esc", "quitforce"},
	{"Alt+Shift+esc", "reloadforce"},
	{"Any+pause", "pause"},

	{"c", "controlunit"},
	{"Any+h", "sharedialog"},
	{"Any+i", "gameinfo"},

	{"Any+j", "mouse2"},
	{"backspace", "mousestate"},
	{"Shift+backspace", "togglecammode"},
	{"Ctrl+backspace", "togglecammode"},
	{"Any+tab", "toggleoverview"},

	{"Any+enter", "chat"},
	{"Alt+ctrl+a,Alt+ctrl+a", "chatswitchally"},
	{"Alt+ctrl+s,Alt+ctrl+s", "chatswitchspec"},

	{"Any+tab", "edit_complete"},
	{"Any+backspace", "edit_backspace"},
	{"Any+delete", "edit_delete"},
	{"Any+home", "edit_home"},
	{"Alt+left", "edit_home"},
	{"Any+end", "edit_end"},
	{"Alt+right", "edit_end"},
	{"Any+up", "edit_prev_line"},
	{"Any+down", "edit_next_line"},
	{"Any+left", "edit_prev_char"},
	{"Any+right", "edit_next_char"},
	{"Ctrl+left", "edit_prev_word"},
	{"Ctrl+right", "edit_next_word"},
	{"Any+enter", "edit_return"},
	{"Any+escape", "edit_escape"},

	{"Ctrl+v", "pastetext"},

	{"Any+home", "increaseViewRadius"},
	{"Any+end", "decreaseViewRadius"},

	{"Alt+insert", "speedup"},
	{"Alt+delete", "slowdown"},
	{"Alt+=", "speedup"},
	{"Alt++", "speedup"},
	{"Alt+-", "slowdown"},
	{"Alt+numpad+", "speedup"},
	{"Alt+numpad-", "slowdown"},

	{",", "prevmenu"},
	{".", "nextmenu"},
	{"Shift+,", "decguiopacity"},
	{"Shift+.", "incguiopacity"},

	{"1", "specteam 0"},
	{"2", "specteam 1"},
	{"3", "specteam 2"},
	{"4", "specteam 3"},
	{"5", "specteam 4"},
	{"6", "specteam 5"},
	{"7", "specteam 6"},
	{"8", "specteam 7"},
	{"9", "specteam 8"},
	{"0", "specteam 9"},

	{"Any+0", "group0"},
	{"Any+1", "group1"},
	{"Any+2", "group2"},
	{"Any+3", "group3"},
	{"Any+4", "group4"},
	{"Any+5", "group5"},
	{"Any+6", "group6"},
	{"Any+7", "group7"},
	{"Any+8", "group8"},
	{"Any+9", "group9"},

	{"[", "buildfacing inc"},
	{"Shift+[", "buildfacing inc"},
	{"]", "buildfacing dec"},
	{"Shift+]", "buildfacing dec"},
	{"Any+z", "buildspacing inc"},
	{"Any+x", "buildspacing dec"},

	{"a", "attack"},
	{"Shift+a", "attack"},
	{"Alt+a", "areaattack"},
	{"Alt+Shift+a", "areaattack"},
	{"d", "manualfire"},
	{"Shift+d", "manualfire"},
	{"Ctrl+d", "selfd"},
	{"Ctrl+Shift+d", "selfd queued"},
	{"e", "reclaim"},
	{"Shift+e", "reclaim"},
	{"f", "fight"},
	{"Shift+f", "fight"},
	{"g", "guard"},
	{"Shift+g", "guard"},
	{"m", "move"},
	{"Shift+m", "move"},
	{"p", "patrol"},
	{"Shift+p", "patrol"},
	{"q", "groupselect"},
	{"q", "groupadd"},
	{"Shift+q", "groupclear"},
	{"r", "repair"},
	{"Shift+r", "repair"},
	{"s", "stop"},
	{"Shift+s", "stop"},
	{"w", "wait"},
	{"Shift+w", "wait queued"},
	{"x", "onoff"},
	{"Shift+x", "onoff"},

	{"Ctrl+t", "trackmode"},
	{"Any+t", "track"},

	{"Ctrl+f1", "viewfps"},
	{"Ctrl+f2", "viewta"},
	{"Ctrl+f3", "viewspring"},
	{"Ctrl+f4", "viewrot"},
	{"Ctrl+f5", "viewfree"},

	{"Any+f1", "ShowElevation"},
	{"Any+f2", "ShowPathTraversability"},
	{"Any+f3", "LastMsgPos"},
	{"Any+f4", "ShowMetalMap"},
	{"Any+f5", "HideInterface"},
	{"Any+f6", "MuteSound"},
	{"Any+l", "togglelos"},

	{"Ctrl+Shift+f8", "savegame"},
	{"Any+f11", "screenshot"},
	{"Any+f12", "screenshot"},
	{"Alt+enter", "fullscreen"},

	{"Any+`,Any+`", "drawlabel"},
	{"Any+\\,Any+\\", "drawlabel"},
	{"Any+~,Any+~", "drawlabel"},

	{"Any+`", "drawinmap"},
	{"Any+\\", "drawinmap"},
	{"Any+~", "drawinmap"},

	{"Any+up", "moveforward"},
	{"Any+down", "moveback"},
	{"Any+right", "moveright"},
	{"Any+left", "moveleft"},
	{"Any+pageup", "moveup"},
	{"Any+pagedown", "movedown"},

	{"Any+ctrl", "moveslow"},
	{"Any+shift", "movefast"},
	{"Any+ctrl", "movetilt"},
	{"Any+alt", "movereset"},
	{"Any+alt", "moverotate"},

	{"Ctrl+a", "select AllMap++_ClearSelection_SelectAll+"},
	{"Ctrl+b", "select AllMap+_Builder_Idle+_ClearSelection_SelectOne+"},
	{"Ctrl+c", "select AllMap+_ManualFireUnit+_ClearSelection_SelectOne+"},
	{"Ctrl+r", "select AllMap+_Radar+_ClearSelection_SelectAll+"},
	{"Ctrl+z", "select AllMap+_InPrevSel+_ClearSelection_SelectAll+"},
}

// LoadDefaults installs the stock binding set and the default fake meta
// key. The hotkey index is rebuilt once afterwards, not per binding.
func (b *Bindings) LoadDefaults() {
	restore := b.suspendHotkeyRebuild()
	defer restore()

	if b.debug {
		b.logger.Debug("loading default bindings")
	}

	b.SetFakeMetaKey("space")
	for _, db := range defaultBindings {
		b.Bind(db.key, db.action)
	}
}
