package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Small fixed-size matrix and vector operations in Q15.16.
 *
 * Description:	2x2 and 3x3 matrices are used by the feature-space
 *		reasoning in the clustering/fingerprint engines (e.g.
 *		covariance-style scaling of 2-D feature points). The
 *		3x3 inverse is declared, per spec.md section 9, but
 *		deliberately left unimplemented -- the teacher lineage
 *		never implements it either, and silently returning a
 *		wrong answer would be worse than refusing.
 *
 *----------------------------------------------------------------*/

type mat2_t [2][2]fixed_t
type mat3_t [3][3]fixed_t
type vec2_t struct{ x, y fixed_t }
type vec3_t struct{ x, y, z fixed_t }

func mat2_mul(a, b mat2_t) mat2_t {
	var r mat2_t
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum fixed_t
			for k := 0; k < 2; k++ {
				sum = fixed_add(sum, fixed_mul(a[i][k], b[k][j]))
			}
			r[i][j] = sum
		}
	}
	return r
}

func mat2_mul_vec(m mat2_t, v vec2_t) vec2_t {
	return vec2_t{
		x: fixed_add(fixed_mul(m[0][0], v.x), fixed_mul(m[0][1], v.y)),
		y: fixed_add(fixed_mul(m[1][0], v.x), fixed_mul(m[1][1], v.y)),
	}
}

func mat2_det(m mat2_t) fixed_t {
	return fixed_sub(fixed_mul(m[0][0], m[1][1]), fixed_mul(m[0][1], m[1][0]))
}

// mat2_inverse returns the inverse and true, or a zero matrix and
// false when the determinant is zero (PreconditionNotMet, per spec.md
// section 7 -- a neutral result rather than a divide-by-zero saturation).
func mat2_inverse(m mat2_t) (mat2_t, bool) {
	var det = mat2_det(m)
	if det == 0 {
		return mat2_t{}, false
	}
	var invDet = fixed_div(FIXED_ONE, det)
	var r mat2_t
	r[0][0] = fixed_mul(m[1][1], invDet)
	r[0][1] = fixed_mul(fixed_neg(m[0][1]), invDet)
	r[1][0] = fixed_mul(fixed_neg(m[1][0]), invDet)
	r[1][1] = fixed_mul(m[0][0], invDet)
	return r, true
}

func mat3_mul(a, b mat3_t) mat3_t {
	var r mat3_t
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum fixed_t
			for k := 0; k < 3; k++ {
				sum = fixed_add(sum, fixed_mul(a[i][k], b[k][j]))
			}
			r[i][j] = sum
		}
	}
	return r
}

func mat3_mul_vec(m mat3_t, v vec3_t) vec3_t {
	return vec3_t{
		x: fixed_add(fixed_add(fixed_mul(m[0][0], v.x), fixed_mul(m[0][1], v.y)), fixed_mul(m[0][2], v.z)),
		y: fixed_add(fixed_add(fixed_mul(m[1][0], v.x), fixed_mul(m[1][1], v.y)), fixed_mul(m[1][2], v.z)),
		z: fixed_add(fixed_add(fixed_mul(m[2][0], v.x), fixed_mul(m[2][1], v.y)), fixed_mul(m[2][2], v.z)),
	}
}

// mat3_inverse is declared but unimplemented, per spec.md section 9:
// "Matrix inverse 3x3 is declared but not implemented in the source;
// leave as optional with a documented 'unimplemented' return path".
func mat3_inverse(m mat3_t) (mat3_t, bool) {
	return mat3_t{}, false
}

func vec2_dot(a, b vec2_t) fixed_t {
	return fixed_add(fixed_mul(a.x, b.x), fixed_mul(a.y, b.y))
}

func vec2_norm(a vec2_t) fixed_t {
	return fixed_sqrt(vec2_dot(a, a))
}

func vec2_euclidean(a, b vec2_t) fixed_t {
	var dx = fixed_sub(a.x, b.x)
	var dy = fixed_sub(a.y, b.y)
	return fixed_sqrt(fixed_add(fixed_mul(dx, dx), fixed_mul(dy, dy)))
}

func vec2_manhattan(a, b vec2_t) fixed_t {
	return fixed_add(fixed_abs(fixed_sub(a.x, b.x)), fixed_abs(fixed_sub(a.y, b.y)))
}

// vec2_cosine returns the cosine similarity of a and b, or 0 if either
// is the zero vector (PreconditionNotMet neutral result).
func vec2_cosine(a, b vec2_t) fixed_t {
	var na = vec2_norm(a)
	var nb = vec2_norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return fixed_div(vec2_dot(a, b), fixed_mul(na, nb))
}
