package tui

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyCtrlC     = "ctrl+c"
	KeyStart     = " "
	KeyPause     = "p"
	KeyResume    = "r"
	KeyStop      = "s"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyFilter    = "f"
	KeyMarkRead  = "enter"
	KeyMarkAll   = "a"
	KeyNextRoute = "n"
)
