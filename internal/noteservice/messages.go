package noteservice

// Console messages. These strings are part of the tool's output contract.
const (
	MsgInvalidIndex = "Nieprawidłowy indeks."
	MsgNoNotes      = "Brak notatek."
	MsgRemovedFmt   = "Usunięto notatkę: %s"
	lineFmt         = "%d: %s"
)
