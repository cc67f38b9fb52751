//go:build !windows

package icon

import "errors"

var errUnsupported = errors.New("仅支持Windows平台")

// unsupportedUpdater rejects resource updates on non-Windows platforms.
type unsupportedUpdater struct{}

func newUpdater() Updater { return unsupportedUpdater{} }

func (unsupportedUpdater) Begin(string) error { return errUnsupported }

func (unsupportedUpdater) Update(uint16, uint16, []byte) error { return errUnsupported }

func (unsupportedUpdater) End(bool) error { return errUnsupported }
