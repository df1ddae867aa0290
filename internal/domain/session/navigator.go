package session

// Navigator abstrae "dónde está el usuario" para que la sesión pueda
// mandarlo al login sin conocer el front (redirect HTTP o pantalla TUI).
type Navigator interface {
	Location() string
	Navigate(path string)
}

type nopNavigator struct{}

func (nopNavigator) Location() string { return "" }
func (nopNavigator) Navigate(string)  {}
