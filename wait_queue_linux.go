//go:build linux && !futex_portable

package futex

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

var defaultWaitQueue WaitQueue = KernelQueue{}

const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128

	futexWaitPrivate = futexWait | futexPrivateFlag
	futexWakePrivate = futexWake | futexPrivateFlag
)

// KernelQueue is a WaitQueue backed by the futex(2) system call with
// process-private wait queues. A blocked goroutine holds its OS thread
// inside the syscall; the scheduler hands its P to another thread.
type KernelQueue struct{}

// Block sleeps in FUTEX_WAIT. EAGAIN (value already changed), EINTR and
// spurious returns all look the same to the caller: a wakeup to re-check.
func (KernelQueue) Block(addr *uint32, expected uint32) {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(expected),
		0, 0, 0,
	)
}

// Wake issues FUTEX_WAKE for up to n sleepers.
func (KernelQueue) Wake(addr *uint32, n int) int {
	if n <= 0 {
		return 0
	}
	r, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakePrivate,
		uintptr(n),
		0, 0, 0,
	)
	if errno != 0 {
		return 0
	}
	return int(r)
}
