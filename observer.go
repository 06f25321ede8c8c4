package mandel

import "image"

// Observer receives the notifications a Controller emits. RegionDirty and
// ScanFinished are called from the render loop goroutine. UndoAvailable and
// RedoAvailable are called from a goroutine issuing commands, never
// concurrently with each other; even when commands race, the last value
// each one reports matches CanUndo and CanRedo. No Controller lock is held
// during any call, so an Observer may call back into the Controller.
type Observer interface {
	// RegionDirty reports pixels that were just written.
	RegionDirty(r image.Rectangle)
	// UndoAvailable reports a change in whether Undo would do anything.
	UndoAvailable(ok bool)
	// RedoAvailable reports a change in whether Redo would do anything.
	RedoAvailable(ok bool)
	// ScanFinished reports the end of every scan, completed or cancelled.
	ScanFinished(r ScanReport)
}

// ObserverFuncs is an Observer built from optional functions. Nil fields
// are skipped.
type ObserverFuncs struct {
	OnRegionDirty   func(r image.Rectangle)
	OnUndoAvailable func(ok bool)
	OnRedoAvailable func(ok bool)
	OnScanFinished  func(r ScanReport)
}

// RegionDirty implements Observer.
func (o ObserverFuncs) RegionDirty(r image.Rectangle) {
	if o.OnRegionDirty != nil {
		o.OnRegionDirty(r)
	}
}

// UndoAvailable implements Observer.
func (o ObserverFuncs) UndoAvailable(ok bool) {
	if o.OnUndoAvailable != nil {
		o.OnUndoAvailable(ok)
	}
}

// RedoAvailable implements Observer.
func (o ObserverFuncs) RedoAvailable(ok bool) {
	if o.OnRedoAvailable != nil {
		o.OnRedoAvailable(ok)
	}
}

// ScanFinished implements Observer.
func (o ObserverFuncs) ScanFinished(r ScanReport) {
	if o.OnScanFinished != nil {
		o.OnScanFinished(r)
	}
}
