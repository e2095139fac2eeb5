package render

type State string

const (
	StateStart           State = "START"
	StateBrowserLaunched State = "BROWSER_LAUNCHED"
	StateSurfaceReady    State = "SURFACE_READY"
	StateCapturing       State = "CAPTURING"
	StateEncoded         State = "ENCODED"
	StateResponded       State = "RESPONDED"
	StateFailed          State = "FAILED"
)

func (s State) String() string {
	return string(s)
}
