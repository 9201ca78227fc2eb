package tape

import "fmt"

const defaultStackBase = 1000

// frame is one call-activation record on the virtual tape stack. Args
// occupy the addresses immediately below the frame's starting stack
// pointer, locals sit below the args, and frame-allocated temps sit below
// the locals, growing further down as frame_alloc_temp16 reserves more.
type frame struct {
	startStackPtr int
	numArgs16     int
	numLocals16   int
	numTemps16    int
}

// Allocator owns every region of the abstract tape: the heap, the
// downward-growing stack, the one-shot globals/temps regions, and the
// frame stack. It implements expr.Addresser so the expression evaluator
// can resolve global/temp/arg/local/local_temp calls directly.
type Allocator struct {
	heap *heap

	stackBase    int
	stackPtr     int
	minStackPtr  int
	frames       []frame

	globalsBase    int // -1 until allocated
	globalsCount16 int
	tempsBase      int // -1 until allocated
	tempsCount16   int
}

// New returns an Allocator with the default stack base (1000).
func New() *Allocator {
	a := &Allocator{}
	a.Reset()
	return a
}

// Reset returns the allocator to its initial state, as if freshly
// constructed, preserving the configured stack base.
func (a *Allocator) Reset() {
	base := a.stackBase
	if base == 0 {
		base = defaultStackBase
	}
	a.heap = newHeap()
	a.stackBase = base
	a.stackPtr = base
	a.minStackPtr = base
	a.frames = nil
	a.globalsBase = -1
	a.globalsCount16 = 0
	a.tempsBase = -1
	a.tempsCount16 = 0
}

// SetStackBase configures the stack's starting address; only meaningful
// before any allocation has happened.
func (a *Allocator) SetStackBase(base int) {
	a.stackBase = base
	a.stackPtr = base
	a.minStackPtr = base
}

// --- heap -------------------------------------------------------------

// AllocCells reserves count contiguous heap cells and returns the base
// address.
func (a *Allocator) AllocCells(count int) int { return a.heap.alloc(count) }

// FreeCells releases the heap allocation starting at addr.
func (a *Allocator) FreeCells(addr int) error {
	if !a.heap.free(addr) {
		return fmt.Errorf("attempt to free unknown allocation at address %d", addr)
	}
	return nil
}

// HeapSize returns the heap's current high-water mark.
func (a *Allocator) HeapSize() int { return a.heap.high }

// --- stack --------------------------------------------------------------

// AllocStack decreases the stack pointer by count and returns the new
// value.
func (a *Allocator) AllocStack(count int) int {
	a.stackPtr -= count
	if a.stackPtr < a.minStackPtr {
		a.minStackPtr = a.stackPtr
	}
	return a.stackPtr
}

// FreeStack increases the stack pointer by count.
func (a *Allocator) FreeStack(count int) { a.stackPtr += count }

// StackPtr returns the current stack pointer.
func (a *Allocator) StackPtr() int { return a.stackPtr }

// MinStackPtr returns the deepest stack pointer value ever reached.
func (a *Allocator) MinStackPtr() int { return a.minStackPtr }

// MaxStackDepth returns the maximum number of cells the stack has used.
func (a *Allocator) MaxStackDepth() int { return a.stackBase - a.minStackPtr }

// --- globals / temps ------------------------------------------------------

// AllocGlobal reserves the one-shot globals region of count16 16-bit cells.
// Calling it twice in one compilation is an error.
func (a *Allocator) AllocGlobal(count16 int) (int, error) {
	if a.globalsBase >= 0 {
		return 0, fmt.Errorf("globals region already allocated")
	}
	a.globalsBase = a.heap.alloc(count16 * 2)
	a.globalsCount16 = count16
	return a.globalsBase, nil
}

// FreeGlobal releases the globals region.
func (a *Allocator) FreeGlobal() error {
	if a.globalsBase < 0 {
		return fmt.Errorf("globals region not allocated")
	}
	if err := a.FreeCells(a.globalsBase); err != nil {
		return err
	}
	a.globalsBase = -1
	a.globalsCount16 = 0
	return nil
}

// GlobalAddr returns the address of the n-th 16-bit global.
func (a *Allocator) GlobalAddr(n int) (int, error) {
	if a.globalsBase < 0 {
		return 0, fmt.Errorf("global(%d) used before alloc_global16", n)
	}
	if n < 0 || n >= a.globalsCount16 {
		return 0, fmt.Errorf("global(%d) out of range [0,%d)", n, a.globalsCount16)
	}
	return a.globalsBase + 2*n, nil
}

// AllocTemp reserves the one-shot temps region of count16 16-bit cells.
func (a *Allocator) AllocTemp(count16 int) (int, error) {
	if a.tempsBase >= 0 {
		return 0, fmt.Errorf("temps region already allocated")
	}
	a.tempsBase = a.heap.alloc(count16 * 2)
	a.tempsCount16 = count16
	return a.tempsBase, nil
}

// FreeTemp releases the temps region.
func (a *Allocator) FreeTemp() error {
	if a.tempsBase < 0 {
		return fmt.Errorf("temps region not allocated")
	}
	if err := a.FreeCells(a.tempsBase); err != nil {
		return err
	}
	a.tempsBase = -1
	a.tempsCount16 = 0
	return nil
}

// TempAddr returns the address of the n-th 16-bit temp.
func (a *Allocator) TempAddr(n int) (int, error) {
	if a.tempsBase < 0 {
		return 0, fmt.Errorf("temp(%d) used before alloc_temp16", n)
	}
	if n < 0 || n >= a.tempsCount16 {
		return 0, fmt.Errorf("temp(%d) out of range [0,%d)", n, a.tempsCount16)
	}
	return a.tempsBase + 2*n, nil
}

// --- frames --------------------------------------------------------------

// EnterFrame pushes a new call frame, reserving 2*(args16+locals16) stack
// cells.
func (a *Allocator) EnterFrame(args16, locals16 int) {
	f := frame{startStackPtr: a.stackPtr, numArgs16: args16, numLocals16: locals16}
	a.AllocStack(2 * (args16 + locals16))
	a.frames = append(a.frames, f)
}

// LeaveFrame pops the top frame, restoring the stack pointer to what it was
// before EnterFrame (releasing args, locals and any frame-allocated
// temps).
func (a *Allocator) LeaveFrame() error {
	if len(a.frames) == 0 {
		return fmt.Errorf("leave_frame16 without matching enter_frame16")
	}
	top := a.frames[len(a.frames)-1]
	a.stackPtr = top.startStackPtr
	a.frames = a.frames[:len(a.frames)-1]
	return nil
}

// FrameAllocTemp reserves count16 more 16-bit cells within the top frame,
// below its locals (and below any previously frame-allocated temps).
func (a *Allocator) FrameAllocTemp(count16 int) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("frame_alloc_temp16 without an active frame")
	}
	top := &a.frames[len(a.frames)-1]
	a.AllocStack(2 * count16)
	top.numTemps16 += count16
	return nil
}

func (a *Allocator) topFrame() (*frame, error) {
	if len(a.frames) == 0 {
		return nil, fmt.Errorf("used outside of an active frame")
	}
	return &a.frames[len(a.frames)-1], nil
}

// FrameArgAddr returns the address of the n-th argument of the current
// frame.
func (a *Allocator) FrameArgAddr(n int) (int, error) {
	f, err := a.topFrame()
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= f.numArgs16 {
		return 0, fmt.Errorf("arg(%d) out of range [0,%d)", n, f.numArgs16)
	}
	return f.startStackPtr - 2*(n+1), nil
}

// FrameLocalAddr returns the address of the n-th local of the current
// frame.
func (a *Allocator) FrameLocalAddr(n int) (int, error) {
	f, err := a.topFrame()
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= f.numLocals16 {
		return 0, fmt.Errorf("local(%d) out of range [0,%d)", n, f.numLocals16)
	}
	return f.startStackPtr - 2*f.numArgs16 - 2*(n+1), nil
}

// FrameLocalTempAddr returns the address of the n-th frame-allocated temp.
func (a *Allocator) FrameLocalTempAddr(n int) (int, error) {
	f, err := a.topFrame()
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= f.numTemps16 {
		return 0, fmt.Errorf("local_temp(%d) out of range [0,%d)", n, f.numTemps16)
	}
	return f.startStackPtr - 2*f.numArgs16 - 2*f.numLocals16 - 2*(n+1), nil
}

// FrameDepth returns how many frames are currently open.
func (a *Allocator) FrameDepth() int { return len(a.frames) }
