package d2interface

import (
	"fmt"
)

// field names shared by every version's tables
const (
	fieldPlayer              = "player"
	fieldEnvSplashes         = "env_splashes"
	fieldEnvBubbles          = "env_bubbles"
	fieldEnvEffects          = "env_effects"
	fieldClientUpdateCount   = "client_update_count"
	fieldGameType            = "game_type"
	fieldActiveEntityTables  = "active_entity_tables"
	fieldEntityTables2       = "entity_tables2"
	fieldClientLoopGlobals   = "client_loop_globals"
	fieldDrawGameFn          = "draw_game_fn"
	fieldClientFpsFrameCount = "client_fps_frame_count"
	fieldClientFrameCount    = "client_frame_count"
	fieldApplyPosChange      = "apply_pos_change"
	fieldCursorTable         = "cursor_table"
	fieldGameCursor          = "game_cursor"
	fieldSummitCloudXPos     = "summit_cloud_x_pos"
	fieldViewportWidth       = "viewport_width"
	fieldViewportHeight      = "viewport_height"
	fieldViewportShift       = "viewport_shift"
	fieldRenderInPerspective = "render_in_perspective"
	fieldHwnd                = "hwnd"
	fieldGetHwnd             = "get_hwnd"
	fieldDrawLine            = "draw_line"
	fieldServerUpdateTime    = "server_update_time"
	fieldDrawMenu            = "draw_menu"
	fieldFindClosestColor    = "find_closest_color"
)

// Client is the game client (D2Client).
type Client struct {
	// Player is the current player. May exist even when not in-game.
	Player Pointer[Entity]
	// EnvSplashes are the active splash effects (Acts 1 & 3 rain).
	EnvSplashes Pointer[EnvArray]
	// EnvBubbles are the active bubble effects.
	EnvBubbles Pointer[EnvArray]
	// EnvEffects holds every active weather effect on builds which keep them
	// in a single array.
	EnvEffects Pointer[EnvArray]
	// ClientUpdateCount is the number of times the client has updated the
	// game state.
	ClientUpdateCount  Data[uint32]
	GameType           Data[GameType]
	ActiveEntityTables Opaque
	EntityTables2      Opaque
	ClientLoopGlobals  Opaque
	// DrawGameFn is the currently selected draw function.
	DrawGameFn FuncSlot
	// ClientFpsFrameCount is used to calculate the client's displayed fps.
	ClientFpsFrameCount Data[uint32]
	// ClientFrameCount is the total number of frames drawn by the client.
	ClientFrameCount Data[uint32]
	ApplyPosChange   Func
	CursorTable      Opaque
	GameCursor       Data[uint32]
	SummitCloudXPos  Data[int32]
	ViewportWidth    Data[uint32]
	ViewportHeight   Data[uint32]
	ViewportShift    Data[uint32]
}

// Gfx is the renderer (D2Gfx).
type Gfx struct {
	// RenderInPerspective reports whether the game is drawn in perspective.
	RenderInPerspective Func
	// Hwnd holds the game's window handle on builds which expose it as data.
	Hwnd Data[HWND]
	// GetHwnd returns the window handle on builds which only export it as a
	// function.
	GetHwnd  Func
	DrawLine Func
}

// Window returns the game's window handle through whichever accessor the
// attached build has.
func (g *Gfx) Window(m Memory, c Caller) (HWND, error) {
	if g.Hwnd.Present() {
		return g.Hwnd.Read(m)
	}
	h, err := g.GetHwnd.Call(c)
	return HWND(h), err
}

// Game is the local game server (D2Game).
type Game struct {
	// ServerUpdateTime is when the server most recently updated the game
	// state.
	ServerUpdateTime Data[uint32]
}

// Win is the window and menu layer (D2Win).
type Win struct {
	// DrawMenu draws the game's current menu.
	DrawMenu         Func
	FindClosestColor Func
}

// Accessors is every accessor group for one attached host build.
type Accessors struct {
	Version string
	Client  *Client
	Gfx     *Gfx
	Game    *Game
	Win     *Win
}

type groupBuilder struct {
	r   *Resolution
	err error
}

func (b *groupBuilder) fail(name, format string, args ...interface{}) {
	if b.err == nil {
		b.err = &FieldError{Table: b.r.table, Field: name, Reason: fmt.Sprintf(format, args...)}
	}
}

func (b *groupBuilder) get(name string, kind Kind, withSig bool) (handle, *Signature) {
	f, ok := b.r.field(name)
	if !ok {
		b.fail(name, "not defined")
		return handle{}, nil
	}
	if f.spec.Type.Kind != kind || (f.spec.Type.Sig != nil) != withSig {
		b.fail(name, "is %s, accessor wants %s", f.spec.Type, kind)
		return handle{}, nil
	}
	return handle{name: name, addr: f.addr, present: f.present}, f.spec.Type.Sig
}

func dataField[T any](b *groupBuilder, name string) Data[T] {
	h, _ := b.get(name, KindData, false)
	return Data[T]{h}
}

func opaqueField(b *groupBuilder, name string) Opaque {
	h, _ := b.get(name, KindData, false)
	return Opaque{h}
}

func pointerField[T any](b *groupBuilder, name string) Pointer[T] {
	h, _ := b.get(name, KindPointer, false)
	return Pointer[T]{h}
}

func funcField(b *groupBuilder, name string) Func {
	h, sig := b.get(name, KindFunc, true)
	if sig == nil {
		return Func{}
	}
	return Func{handle: h, sig: *sig}
}

func funcSlotField(b *groupBuilder, name string) FuncSlot {
	h, sig := b.get(name, KindData, true)
	if sig == nil {
		return FuncSlot{}
	}
	return FuncSlot{handle: h, sig: *sig}
}

func newClient(r *Resolution) (*Client, error) {
	b := &groupBuilder{r: r}
	c := &Client{
		Player:              pointerField[Entity](b, fieldPlayer),
		EnvSplashes:         pointerField[EnvArray](b, fieldEnvSplashes),
		EnvBubbles:          pointerField[EnvArray](b, fieldEnvBubbles),
		EnvEffects:          pointerField[EnvArray](b, fieldEnvEffects),
		ClientUpdateCount:   dataField[uint32](b, fieldClientUpdateCount),
		GameType:            dataField[GameType](b, fieldGameType),
		ActiveEntityTables:  opaqueField(b, fieldActiveEntityTables),
		EntityTables2:       opaqueField(b, fieldEntityTables2),
		ClientLoopGlobals:   opaqueField(b, fieldClientLoopGlobals),
		DrawGameFn:          funcSlotField(b, fieldDrawGameFn),
		ClientFpsFrameCount: dataField[uint32](b, fieldClientFpsFrameCount),
		ClientFrameCount:    dataField[uint32](b, fieldClientFrameCount),
		ApplyPosChange:      funcField(b, fieldApplyPosChange),
		CursorTable:         opaqueField(b, fieldCursorTable),
		GameCursor:          dataField[uint32](b, fieldGameCursor),
		SummitCloudXPos:     dataField[int32](b, fieldSummitCloudXPos),
		ViewportWidth:       dataField[uint32](b, fieldViewportWidth),
		ViewportHeight:      dataField[uint32](b, fieldViewportHeight),
		ViewportShift:       dataField[uint32](b, fieldViewportShift),
	}
	if b.err != nil {
		return nil, b.err
	}
	return c, nil
}

func newGfx(r *Resolution) (*Gfx, error) {
	b := &groupBuilder{r: r}
	g := &Gfx{
		RenderInPerspective: funcField(b, fieldRenderInPerspective),
		Hwnd:                dataField[HWND](b, fieldHwnd),
		GetHwnd:             funcField(b, fieldGetHwnd),
		DrawLine:            funcField(b, fieldDrawLine),
	}
	if b.err != nil {
		return nil, b.err
	}
	return g, nil
}

func newGame(r *Resolution) (*Game, error) {
	b := &groupBuilder{r: r}
	g := &Game{
		ServerUpdateTime: dataField[uint32](b, fieldServerUpdateTime),
	}
	if b.err != nil {
		return nil, b.err
	}
	return g, nil
}

func newWin(r *Resolution) (*Win, error) {
	b := &groupBuilder{r: r}
	w := &Win{
		DrawMenu:         funcField(b, fieldDrawMenu),
		FindClosestColor: funcField(b, fieldFindClosestColor),
	}
	if b.err != nil {
		return nil, b.err
	}
	return w, nil
}

// NewAccessors resolves every table of v against the module loaded from the
// table's module file and builds the accessor groups. Either every group is
// returned or none is.
func NewAccessors(v *Version, modules map[string]Module) (*Accessors, error) {
	res, err := resolveVersion(v, modules)
	if err != nil {
		return nil, err
	}
	return newAccessors(v, res)
}

// resolveVersion resolves v's tables in group order.
func resolveVersion(v *Version, modules map[string]Module) ([4]*Resolution, error) {
	var res [4]*Resolution
	for i, t := range v.Tables() {
		m, ok := modules[t.Module]
		if !ok {
			return res, fmt.Errorf("table %s: module %s not bound", t.Name, t.Module)
		}
		r, err := Resolve(t, m)
		if err != nil {
			return res, err
		}
		res[i] = r
	}
	return res, nil
}

func newAccessors(v *Version, res [4]*Resolution) (*Accessors, error) {
	client, err := newClient(res[0])
	if err != nil {
		return nil, err
	}
	gfx, err := newGfx(res[1])
	if err != nil {
		return nil, err
	}
	game, err := newGame(res[2])
	if err != nil {
		return nil, err
	}
	win, err := newWin(res[3])
	if err != nil {
		return nil, err
	}
	return &Accessors{Version: v.Name, Client: client, Gfx: gfx, Game: game, Win: win}, nil
}
