package vm

// Comparison and bitwise opcode bodies, ported from the teacher's
// core/vm/iinstructions.go.

func opLt(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil, nil
}

func opGt(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil, nil
}

func opSlt(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil, nil
}

func opSgt(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil, nil
}

func opEq(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil, nil
}

func opIszero(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	x := c.stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil, nil
}

func opAnd(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.And(&x, y)
	return nil, nil, nil
}

func opOr(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Or(&x, y)
	return nil, nil, nil
}

func opXor(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Xor(&x, y)
	return nil, nil, nil
}

func opNot(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	x := c.stack.peek()
	x.Not(x)
	return nil, nil, nil
}

func opByte(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	th, _ := c.stack.pop()
	val := c.stack.peek()
	val.Byte(&th)
	return nil, nil, nil
}

func opSHL(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	shift, _ := c.stack.pop()
	value := c.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil, nil
}

func opSHR(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	shift, _ := c.stack.pop()
	value := c.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil, nil
}

func opSAR(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	shift, _ := c.stack.pop()
	value := c.stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil, nil
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return nil, nil, nil
}
