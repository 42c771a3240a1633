package goldie

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"www.velocidex.com/golang/recyclebin/json"
)

func Assert(t *testing.T, filename string, golden []byte) {
	t.Helper()

	g := goldie.New(t)
	_ = g.WithFixtureDir("fixtures")
	g.Assert(t, filename, golden)
}

func AssertJson(t *testing.T, filename string, golden interface{}) {
	t.Helper()

	g := goldie.New(t)
	_ = g.WithFixtureDir("fixtures")
	g.Assert(t, filename, MustMarshalIndent(golden))
}

func MustMarshalIndent(v interface{}) []byte {
	result, err := json.MarshalIndent(v)
	if err != nil {
		panic(err)
	}
	return result
}
