//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/innabyinna/ad-labs/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		seed := int64(1)
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			seed = int64(args[0].Int())
		}
		e, err := webdemo.NewEngine(webdemo.WithSeed(seed))
		if err != nil {
			return err.Error()
		}
		engine = e
		return frameToJS(engine.Frame())
	}))

	api.Set("update", export(func(args []js.Value) any {
		if engine == nil {
			return "engine not initialised"
		}
		if len(args) < 1 {
			return "update needs a settings object"
		}
		raw := js.Global().Get("JSON").Call("stringify", args[0]).String()
		var s webdemo.Settings
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return err.Error()
		}
		f, err := engine.OnEvent(webdemo.UpdateEvent(s))
		if err != nil {
			return err.Error()
		}
		return frameToJS(f)
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine == nil {
			return "engine not initialised"
		}
		f, err := engine.OnEvent(webdemo.ResetEvent())
		if err != nil {
			return err.Error()
		}
		return frameToJS(f)
	}))

	api.Set("settings", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		b, err := json.Marshal(engine.Settings())
		if err != nil {
			return err.Error()
		}
		return js.Global().Get("JSON").Call("parse", string(b))
	}))

	js.Global().Set("HarmonicLab", api)
	select {}
}

func frameToJS(f webdemo.Frame) js.Value {
	out := js.Global().Get("Object").New()
	out.Set("seq", f.Seq)
	out.Set("t", float64Array(f.Time))
	out.Set("raw", float64Array(f.Raw))
	out.Set("filtered", float64Array(f.Filtered))
	return out
}

func float64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
