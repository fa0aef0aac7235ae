package encrypted

import (
	"github.com/skynetlabs/go-skydb/pkg/errors"
)

// ErrSizeOverflow is returned when a size exceeds the largest padding
// bucket instead of silently wrapping
var ErrSizeOverflow = errors.New("file size overflows the padding bucket sequence")

const (
	kib = uint64(1 << 10)

	// the bucket for 2^n covers sizes up to 2^n * 80 KiB, padded to
	// multiples of 2^n * 4 KiB
	bucketRangeUnit = 80 * kib
	bucketBlockUnit = 4 * kib

	// beyond this shift the bucket range no longer fits in a uint64
	maxBucketShift = 46
)

// PadFileSize rounds a plaintext size up to the next padded block.
//
// Small sizes round up to multiples of 4 KiB; the block doubles every
// time the size doubles past 80 KiB, so the padded size never exceeds
// the input by more than ~5%. The mapping is idempotent and always
// lands on a size accepted by CheckPaddedBlock.
func PadFileSize(size uint64) (uint64, error) {
	for n := uint(0); n <= maxBucketShift; n++ {
		if size <= bucketRangeUnit<<n {
			block := bucketBlockUnit << n
			if size%block == 0 {
				return size, nil
			}
			return size - size%block + block, nil
		}
	}
	return 0, ErrSizeOverflow.WrapMessage("cannot pad size %d", size)
}

// CheckPaddedBlock is the membership predicate for the padded size
// sequence produced by PadFileSize
func CheckPaddedBlock(size uint64) (bool, error) {
	for n := uint(0); n <= maxBucketShift; n++ {
		if size <= bucketRangeUnit<<n {
			return size%(bucketBlockUnit<<n) == 0, nil
		}
	}
	return false, ErrSizeOverflow.WrapMessage("cannot check size %d", size)
}
