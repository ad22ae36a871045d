package vm

// Arithmetic opcode bodies, ported idiom-for-idiom from the teacher's
// core/vm/iinstructions.go: pop the first operand, peek the second
// (which stays on the stack as the result slot), mutate it in place via
// uint256.Int's own methods. The only divergence from the teacher is
// that pop/peek here can fail (no separate baseCheck pass precedes
// execution), so each body checks stack depth first.

func opAdd(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Add(&x, y)
	return nil, nil, nil
}

func opSub(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Sub(&x, y)
	return nil, nil, nil
}

func opMul(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Mul(&x, y)
	return nil, nil, nil
}

func opDiv(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Div(&x, y)
	return nil, nil, nil
}

func opSdiv(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.SDiv(&x, y)
	return nil, nil, nil
}

func opMod(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.Mod(&x, y)
	return nil, nil, nil
}

func opSmod(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y := c.stack.peek()
	y.SMod(&x, y)
	return nil, nil, nil
}

func opExp(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	base, _ := c.stack.pop()
	exponent := c.stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil, nil
}

func opSignExtend(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	back, _ := c.stack.pop()
	num := c.stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil, nil
}

func opAddmod(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y, _ := c.stack.pop()
	z := c.stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil, nil
}

func opMulmod(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	x, _ := c.stack.pop()
	y, _ := c.stack.pop()
	z := c.stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil, nil
}
