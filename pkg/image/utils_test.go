package image

import (
	"bitsteg/pkg/bitmap"
	"bitsteg/test"
	"testing"
)

type testImage struct {
	name string
	file func() []byte
}

var testImages = []testImage{
	{"rgb24", func() []byte { return test.GenerateBMP(64, 48, 24) }},
	{"rgb24-top-down", func() []byte { return test.GenerateBMP(31, -17, 24) }},
	{"rgb8", func() []byte { return test.GenerateBMP(100, 20, 8) }},
	{"bitfields32", func() []byte {
		return test.GenerateBitfieldsBMP(40, 40, 32, [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000})
	}},
	{"bitfields16", func() []byte {
		return test.GenerateBitfieldsBMP(33, 21, 16, [4]uint32{0xf800, 0x07e0, 0x001f, 0})
	}},
}

func runWithAllImageFormats(t *testing.T, testFunc func(t *testing.T, file []byte)) {
	for _, ti := range testImages {
		ti := ti
		t.Run(ti.name, func(t *testing.T) {
			t.Parallel()
			testFunc(t, ti.file())
		})
	}
}

func openBitmap(t testing.TB, file []byte) *bitmap.Bitmap {
	t.Helper()
	bm, err := bitmap.FromBytes(file)
	if err != nil {
		t.Fatalf("Error opening bitmap: %s", err)
	}
	return bm
}
