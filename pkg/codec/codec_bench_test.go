//go:build bench
// +build bench

package codec

import "testing"

func benchLayout() *Layout {
	return NewLayoutBuilder().
		AddUint16("id").
		AddUint8("flag").
		AddInt32("score").
		AddFloat32("rate").
		AddBytes("name", 16).
		MustBuild("bench")
}

func BenchmarkRecordCodec_Decode(b *testing.B) {
	rc := NewRecordCodec(benchLayout())
	buf := make([]byte, rc.Layout().Size())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rc.Decode(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecordCodec_Encode(b *testing.B) {
	rc := NewRecordCodec(benchLayout())
	rec := Record{
		"id":    UintValue(1),
		"flag":  UintValue(2),
		"score": IntValue(-3),
		"rate":  FloatValue(0.5),
		"name":  BytesValue(make([]byte, 16)),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rc.Encode(rec); err != nil {
			b.Fatal(err)
		}
	}
}
