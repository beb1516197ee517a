//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

var adviceFor = map[AccessPattern]int{
	AccessSequential: unix.MADV_SEQUENTIAL,
	AccessRandom:     unix.MADV_RANDOM,
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}
	advice, ok := adviceFor[pattern]
	if !ok {
		advice = unix.MADV_NORMAL
	}
	// Hints are advisory; an unaligned view is not worth failing a walk over.
	if err := unix.Madvise(data, advice); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
