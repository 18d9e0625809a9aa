package protocols

import (
	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Input objects are created from the seat at the seat's version, so they
// share its ceiling.
var (
	SeatInterface     = handle.Interface{Name: "wl_seat", Version: 7}
	KeyboardInterface = handle.Interface{Name: "wl_keyboard", Version: 7}
	PointerInterface  = handle.Interface{Name: "wl_pointer", Version: 7}
	TouchInterface    = handle.Interface{Name: "wl_touch", Version: 7}
)

// Versions introducing the release request.
const (
	SeatReleaseSince  uint32 = 5
	InputReleaseSince uint32 = 3
)

// Seat capability bits.
const (
	SeatCapabilityPointer  uint32 = 1
	SeatCapabilityKeyboard uint32 = 2
	SeatCapabilityTouch    uint32 = 4
)

// Seat describes wl_seat.
type Seat struct{}

type SeatListener struct {
	Capabilities func(client.SeatCapabilitiesEvent)
	Name         func(client.SeatNameEvent)
}

func (Seat) Interface() *handle.Interface { return &SeatInterface }

func (Seat) Destroy(s *client.Seat) error { return release(s, SeatReleaseSince) }

func (Seat) AddListener(s *client.Seat, l *SeatListener) error {
	if s == nil {
		return ErrNilProxy
	}
	if err := attach(s); err != nil {
		return err
	}
	s.SetCapabilitiesHandler(func(e client.SeatCapabilitiesEvent) { l.Capabilities(e) })
	s.SetNameHandler(func(e client.SeatNameEvent) { l.Name(e) })
	return nil
}

// Keyboard describes wl_keyboard.
type Keyboard struct{}

type KeyboardListener struct {
	Keymap     func(client.KeyboardKeymapEvent)
	Enter      func(client.KeyboardEnterEvent)
	Leave      func(client.KeyboardLeaveEvent)
	Key        func(client.KeyboardKeyEvent)
	Modifiers  func(client.KeyboardModifiersEvent)
	RepeatInfo func(client.KeyboardRepeatInfoEvent)
}

func (Keyboard) Interface() *handle.Interface { return &KeyboardInterface }

func (Keyboard) Destroy(k *client.Keyboard) error { return release(k, InputReleaseSince) }

func (Keyboard) AddListener(k *client.Keyboard, l *KeyboardListener) error {
	if k == nil {
		return ErrNilProxy
	}
	if err := attach(k); err != nil {
		return err
	}
	k.SetKeymapHandler(func(e client.KeyboardKeymapEvent) { l.Keymap(e) })
	k.SetEnterHandler(func(e client.KeyboardEnterEvent) { l.Enter(e) })
	k.SetLeaveHandler(func(e client.KeyboardLeaveEvent) { l.Leave(e) })
	k.SetKeyHandler(func(e client.KeyboardKeyEvent) { l.Key(e) })
	k.SetModifiersHandler(func(e client.KeyboardModifiersEvent) { l.Modifiers(e) })
	k.SetRepeatInfoHandler(func(e client.KeyboardRepeatInfoEvent) { l.RepeatInfo(e) })
	return nil
}

// Pointer describes wl_pointer.
type Pointer struct{}

type PointerListener struct {
	Enter        func(client.PointerEnterEvent)
	Leave        func(client.PointerLeaveEvent)
	Motion       func(client.PointerMotionEvent)
	Button       func(client.PointerButtonEvent)
	Axis         func(client.PointerAxisEvent)
	Frame        func(client.PointerFrameEvent)
	AxisSource   func(client.PointerAxisSourceEvent)
	AxisStop     func(client.PointerAxisStopEvent)
	AxisDiscrete func(client.PointerAxisDiscreteEvent)
}

func (Pointer) Interface() *handle.Interface { return &PointerInterface }

func (Pointer) Destroy(p *client.Pointer) error { return release(p, InputReleaseSince) }

func (Pointer) AddListener(p *client.Pointer, l *PointerListener) error {
	if p == nil {
		return ErrNilProxy
	}
	if err := attach(p); err != nil {
		return err
	}
	p.SetEnterHandler(func(e client.PointerEnterEvent) { l.Enter(e) })
	p.SetLeaveHandler(func(e client.PointerLeaveEvent) { l.Leave(e) })
	p.SetMotionHandler(func(e client.PointerMotionEvent) { l.Motion(e) })
	p.SetButtonHandler(func(e client.PointerButtonEvent) { l.Button(e) })
	p.SetAxisHandler(func(e client.PointerAxisEvent) { l.Axis(e) })
	p.SetFrameHandler(func(e client.PointerFrameEvent) { l.Frame(e) })
	p.SetAxisSourceHandler(func(e client.PointerAxisSourceEvent) { l.AxisSource(e) })
	p.SetAxisStopHandler(func(e client.PointerAxisStopEvent) { l.AxisStop(e) })
	p.SetAxisDiscreteHandler(func(e client.PointerAxisDiscreteEvent) { l.AxisDiscrete(e) })
	return nil
}

// Touch describes wl_touch.
type Touch struct{}

type TouchListener struct {
	Down        func(client.TouchDownEvent)
	Up          func(client.TouchUpEvent)
	Motion      func(client.TouchMotionEvent)
	Frame       func(client.TouchFrameEvent)
	Cancel      func(client.TouchCancelEvent)
	Shape       func(client.TouchShapeEvent)
	Orientation func(client.TouchOrientationEvent)
}

func (Touch) Interface() *handle.Interface { return &TouchInterface }

func (Touch) Destroy(t *client.Touch) error { return release(t, InputReleaseSince) }

func (Touch) AddListener(t *client.Touch, l *TouchListener) error {
	if t == nil {
		return ErrNilProxy
	}
	if err := attach(t); err != nil {
		return err
	}
	t.SetDownHandler(func(e client.TouchDownEvent) { l.Down(e) })
	t.SetUpHandler(func(e client.TouchUpEvent) { l.Up(e) })
	t.SetMotionHandler(func(e client.TouchMotionEvent) { l.Motion(e) })
	t.SetFrameHandler(func(e client.TouchFrameEvent) { l.Frame(e) })
	t.SetCancelHandler(func(e client.TouchCancelEvent) { l.Cancel(e) })
	t.SetShapeHandler(func(e client.TouchShapeEvent) { l.Shape(e) })
	t.SetOrientationHandler(func(e client.TouchOrientationEvent) { l.Orientation(e) })
	return nil
}

type (
	SeatHandle     = handle.Listened[*client.Seat, SeatListener, Seat]
	KeyboardHandle = handle.Listened[*client.Keyboard, KeyboardListener, Keyboard]
	PointerHandle  = handle.Listened[*client.Pointer, PointerListener, Pointer]
	TouchHandle    = handle.Listened[*client.Touch, TouchListener, Touch]
)
