package d2interface

// Module files of the 1.0x - 1.13 builds.
const (
	ModuleClient = "D2Client.dll"
	ModuleGfx    = "D2Gfx.dll"
	ModuleGame   = "D2Game.dll"
	ModuleWin    = "D2Win.dll"
)

// Base tables define every field a group knows about with its semantic type,
// all absent. Each host build derives its tables from them, so a build only
// lists the fields it actually has.
var (
	clientBase = Table{Name: "base/client", Module: ModuleClient, Fields: []FieldSpec{
		Field(fieldPlayer, PointerTo("Entity"), Absent()),
		Field(fieldEnvSplashes, PointerTo("EnvArray"), Absent()),
		Field(fieldEnvBubbles, PointerTo("EnvArray"), Absent()),
		Field(fieldEnvEffects, PointerTo("EnvArray"), Absent()),
		Field(fieldClientUpdateCount, DataOf("u32"), Absent()),
		Field(fieldGameType, DataOf("GameType"), Absent()),
		Field(fieldActiveEntityTables, DataOf("EntityTables"), Absent()),
		Field(fieldEntityTables2, DataOf("EntityTables"), Absent()),
		Field(fieldClientLoopGlobals, DataOf("ClientLoopGlobals"), Absent()),
		Field(fieldDrawGameFn, FuncSlotOf(Sig(Fastcall, "arg")), Absent()),
		Field(fieldClientFpsFrameCount, DataOf("u32"), Absent()),
		Field(fieldClientFrameCount, DataOf("u32"), Absent()),
		Field(fieldApplyPosChange, FuncOf(Sig(Stdcall, "pos @ esi", "x", "y", "room")), Absent()),
		Field(fieldCursorTable, DataOf("CursorTable"), Absent()),
		Field(fieldGameCursor, DataOf("u32"), Absent()),
		Field(fieldSummitCloudXPos, DataOf("i32"), Absent()),
		Field(fieldViewportWidth, DataOf("u32"), Absent()),
		Field(fieldViewportHeight, DataOf("u32"), Absent()),
		Field(fieldViewportShift, DataOf("u32"), Absent()),
	}}

	gfxBase = Table{Name: "base/gfx", Module: ModuleGfx, Fields: []FieldSpec{
		Field(fieldRenderInPerspective, FuncOf(Sig(Stdcall).Returning()), Absent()),
		Field(fieldHwnd, DataOf("HWND"), Absent()),
		Field(fieldGetHwnd, FuncOf(Sig(Stdcall).Returning()), Absent()),
		Field(fieldDrawLine, FuncOf(Sig(Stdcall, "x1", "y1", "x2", "y2", "color", "alpha")), Absent()),
	}}

	gameBase = Table{Name: "base/game", Module: ModuleGame, Fields: []FieldSpec{
		Field(fieldServerUpdateTime, DataOf("u32"), Absent()),
	}}

	winBase = Table{Name: "base/win", Module: ModuleWin, Fields: []FieldSpec{
		Field(fieldDrawMenu, FuncOf(Sig(Stdcall)), Absent()),
		Field(fieldFindClosestColor, FuncOf(Sig(Stdcall, "red", "green", "blue").Returning()), Absent()),
	}}
)

// Export ordinals used by 1.11 era builds. Later builds shuffled their
// ordinals and override these with offsets.
var (
	gfxOrdinals = MustDerive(gfxBase, "ordinals/gfx",
		gfxBase.At(fieldRenderInPerspective, Ordinal(10046)),
		gfxBase.At(fieldGetHwnd, Ordinal(10022)),
		gfxBase.At(fieldDrawLine, Ordinal(10001)),
	)

	winOrdinals = MustDerive(winBase, "ordinals/win",
		winBase.At(fieldDrawMenu, Ordinal(10129)),
		winBase.At(fieldFindClosestColor, Ordinal(10070)),
	)
)
