//go:build !windows

package platform

// Open always fails outside windows.
func Open() (Platform, error) {
	return nil, ErrUnsupported
}
