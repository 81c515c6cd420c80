package bot

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// DefaultLuaTimeout bounds a single choose() call
const DefaultLuaTimeout = 2 * time.Second

// LuaStrategy runs a user-supplied Lua heuristic. The script must define a
// global function
//
//	choose(state) -> card_index, row, col
//
// returning 0-based indices. The state table holds:
//
//	color      "Red" or "Blue"
//	rows, cols grid size
//	hand       list of {name, north, south, east, west}; hand[1] is card_index 0
//	cells      row-major list of {kind = "hole"|"slot", owner = "Red"|"Blue"|nil, card = {...}|nil}
//	flip_count function(card_index, row, col) -> captures, or nil for an illegal placement
//	playable   function(row, col) -> bool
//	score      function(color) -> cards owned by "red" or "blue" (any case)
//
// The script is compiled once. Every call runs in a fresh interpreter, so
// concurrent calls never share Lua state.
type LuaStrategy struct {
	name    string
	proto   *lua.FunctionProto
	timeout time.Duration
}

// LuaOption configures a LuaStrategy
type LuaOption func(s *LuaStrategy)

// WithLuaTimeout overrides DefaultLuaTimeout
func WithLuaTimeout(d time.Duration) LuaOption {
	return func(s *LuaStrategy) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewLuaStrategy compiles source. chunkName appears in Lua error messages.
func NewLuaStrategy(chunkName, source string, opts ...LuaOption) (*LuaStrategy, error) {
	chunk, err := parse.Parse(strings.NewReader(source), chunkName)
	if err != nil {
		return nil, fmt.Errorf("parse lua strategy %s: %v: %w", chunkName, err, model.ErrInvalidConfiguration)
	}
	proto, err := lua.Compile(chunk, chunkName)
	if err != nil {
		return nil, fmt.Errorf("compile lua strategy %s: %v: %w", chunkName, err, model.ErrInvalidConfiguration)
	}

	s := &LuaStrategy{
		name:    model.StrategyLua,
		proto:   proto,
		timeout: DefaultLuaTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Fail at load time rather than on the first move. Top-level code gets
	// the same time limit as a choose call.
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	L := s.newState(ctx)
	defer L.Close()
	if _, err := s.chooseFunc(L); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadLuaStrategy reads and compiles a script file
func LoadLuaStrategy(path string, opts ...LuaOption) (*LuaStrategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua strategy: %w", err)
	}
	return NewLuaStrategy(path, string(source), opts...)
}

func (s *LuaStrategy) Name() string {
	return s.name
}

func (s *LuaStrategy) ChooseMove(color model.PlayerColor, view rules.View) (model.Move, error) {
	hand := view.Hand(color)
	if len(hand) == 0 {
		return model.Move{}, noLegalMove(color, "empty hand")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	L := s.newState(ctx)
	defer L.Close()

	choose, err := s.chooseFunc(L)
	if err != nil {
		return model.Move{}, err
	}

	state := s.stateTable(L, color, view, hand)
	if err := L.CallByParam(lua.P{Fn: choose, NRet: 3, Protect: true}, state); err != nil {
		return model.Move{}, fmt.Errorf("lua strategy choose: %w", err)
	}
	cardIndex, row, col := L.Get(-3), L.Get(-2), L.Get(-1)
	L.Pop(3)

	idx, err := luaInt(cardIndex, "card_index")
	if err != nil {
		return model.Move{}, err
	}
	r, err := luaInt(row, "row")
	if err != nil {
		return model.Move{}, err
	}
	c, err := luaInt(col, "col")
	if err != nil {
		return model.Move{}, err
	}

	if idx < 0 || idx >= len(hand) {
		return model.Move{}, fmt.Errorf("lua strategy chose card %d of %d: %w", idx, len(hand), model.ErrInvalidCardIndex)
	}
	pos := model.Position{Row: r, Col: c}
	if !view.IsPlayable(r, c) {
		return model.Move{}, fmt.Errorf("lua strategy chose %s: %w", pos, model.ErrInvalidMove)
	}
	return model.Move{CardIndex: idx, Card: hand[idx], Position: pos}, nil
}

// newState opens only the libraries a heuristic needs and loads the script
func (s *LuaStrategy) newState(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// No file or chunk loading from inside a heuristic
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetContext(ctx)
	return L
}

// chooseFunc runs the compiled chunk and returns its choose function
func (s *LuaStrategy) chooseFunc(L *lua.LState) (*lua.LFunction, error) {
	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("load lua strategy: %v: %w", err, model.ErrInvalidConfiguration)
	}
	fn, ok := L.GetGlobal("choose").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua strategy defines no choose function: %w", model.ErrInvalidConfiguration)
	}
	return fn, nil
}

func (s *LuaStrategy) stateTable(L *lua.LState, color model.PlayerColor, view rules.View, hand []model.Card) *lua.LTable {
	rows, cols := view.Dimensions()

	state := L.NewTable()
	state.RawSetString("color", lua.LString(color.String()))
	state.RawSetString("rows", lua.LNumber(rows))
	state.RawSetString("cols", lua.LNumber(cols))

	handTable := L.NewTable()
	for _, card := range hand {
		handTable.Append(cardTable(L, card))
	}
	state.RawSetString("hand", handTable)

	cells := L.NewTable()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := L.NewTable()
			contents, err := view.CellContents(row, col)
			if err != nil || contents.IsHole() {
				cell.RawSetString("kind", lua.LString("hole"))
			} else {
				cell.RawSetString("kind", lua.LString("slot"))
			}
			if err == nil && contents.Occupied {
				cell.RawSetString("owner", lua.LString(contents.Owner.String()))
				cell.RawSetString("card", cardTable(L, contents.Card))
			}
			cells.Append(cell)
		}
	}
	state.RawSetString("cells", cells)

	state.RawSetString("flip_count", L.NewFunction(func(L *lua.LState) int {
		count, err := view.FlipCountFor(color, L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(count))
		return 1
	}))
	state.RawSetString("playable", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(view.IsPlayable(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	state.RawSetString("score", L.NewFunction(func(L *lua.LState) int {
		c, err := model.ParsePlayerColor(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		L.Push(lua.LNumber(view.Score(c)))
		return 1
	}))

	return state
}

func cardTable(L *lua.LState, card model.Card) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(card.Name))
	t.RawSetString("north", lua.LNumber(card.North))
	t.RawSetString("south", lua.LNumber(card.South))
	t.RawSetString("east", lua.LNumber(card.East))
	t.RawSetString("west", lua.LNumber(card.West))
	return t
}

func luaInt(v lua.LValue, what string) (int, error) {
	n, ok := v.(lua.LNumber)
	if !ok || lua.LNumber(int(n)) != n {
		return 0, fmt.Errorf("lua strategy returned %s %q for %s: %w", v.Type(), v.String(), what, model.ErrInvalidMove)
	}
	return int(n), nil
}
