package docxscrub

type Limits struct {
	MaxEntries          int    // entries in the container
	MaxPartCompressed   uint64 // stored size of a text-bearing part
	MaxPartUncompressed uint64 // inflated size of a text-bearing part
	MaxCharsetEntries   int    // code points in a charset config
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:          10_000,
		MaxPartCompressed:   256 << 20, // 256 MiB stored payload cap
		MaxPartUncompressed: 1 << 30,   // 1 GiB
		MaxCharsetEntries:   4_096,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxPartCompressed == 0 {
		l.MaxPartCompressed = d.MaxPartCompressed
	}
	if l.MaxPartUncompressed == 0 {
		l.MaxPartUncompressed = d.MaxPartUncompressed
	}
	if l.MaxCharsetEntries == 0 {
		l.MaxCharsetEntries = d.MaxCharsetEntries
	}
	return l
}
