package page

import "testing"

func Test_keyFromUint64RoundTrip(t *testing.T) {
	k := KeyFromUint64(0xdeadbeef)
	assertEqual(t, uint64(0xdeadbeef), k.Uint64(), "")
}

func Test_keyLessOrdersByMagnitude(t *testing.T) {
	small := KeyFromUint64(1)
	big := KeyFromUint64(2)
	assertEqual(t, true, small.Less(big), "1 < 2")
	assertEqual(t, false, big.Less(small), "2 is not < 1")
	assertEqual(t, false, small.Less(small), "a key is never less than itself")
}

func Test_keyLessComparesHighBytesFirst(t *testing.T) {
	// A key with a nonzero high byte must order above any key whose
	// value only occupies the low 8 bytes, even though KeyFromUint64
	// never sets the high bytes itself.
	var hi Key
	hi[15] = 1
	lo := KeyFromUint64(^uint64(0))
	assertEqual(t, true, lo.Less(hi), "max low-8-byte key is still less than a key with any high byte set")
}

func Test_pageRangeOverlaps(t *testing.T) {
	a := PageRange{Offset: 10, Count: 3} // covers 10,11,12
	b := PageRange{Offset: 12, Count: 2} // covers 12,13
	c := PageRange{Offset: 13, Count: 2} // covers 13,14
	assertEqual(t, true, a.Overlaps(b), "a and b share page 12")
	assertEqual(t, false, a.Overlaps(c), "a ends at 12, c starts at 13")
}

func Test_pageRangeFileOffset(t *testing.T) {
	r := PageRange{Offset: 2, Count: 1}
	assertEqual(t, int64(2*Len), r.FileOffset(), "")
	assertEqual(t, Len, r.ByteLen(), "")
}

func assertEqual[T comparable](t *testing.T, expected T, actual T, msg string) {
	t.Helper()
	if expected == actual {
		return
	}
	if msg != "" {
		t.Errorf("expected (%+v) is not equal to actual (%+v): (%v)", expected, actual, msg)
	} else {
		t.Errorf("expected (%+v) is not equal to actual (%+v)", expected, actual)
	}
}
