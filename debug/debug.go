package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Merge    bool
	Resolve  bool
	Validate bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("IDLAYER_DEBUG_LOAD")
	d.Merge = boolEnv("IDLAYER_DEBUG_MERGE")
	d.Resolve = boolEnv("IDLAYER_DEBUG_RESOLVE")
	d.Validate = boolEnv("IDLAYER_DEBUG_VALIDATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Merge() bool {
	return d.Merge
}
func Resolve() bool {
	return d.Resolve
}
func Validate() bool {
	return d.Validate
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
