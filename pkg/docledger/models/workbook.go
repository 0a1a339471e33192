package models

// Workbook is the ordered sheet collection loaded from one tracking file.
type Workbook struct {
	// Path is the file the workbook was loaded from (and is saved back to).
	Path string
	// Sheets in workbook order. Names are unique.
	Sheets []*Sheet
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddSheet appends a new empty sheet and returns it.
func (w *Workbook) AddSheet(name string) *Sheet {
	s := NewSheet(name)
	w.Sheets = append(w.Sheets, s)
	return s
}
