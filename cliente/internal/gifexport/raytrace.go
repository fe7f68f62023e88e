// Package gifexport renderiza a cena por ray tracing, sem janela, e grava a
// rotação da molécula como um GIF animado.
package gifexport

import (
	"image"
	"image/color"
	"math"
	"sync"

	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-4

// Camera é uma câmera pinhole olhando de Eye para Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FOV    float64 // Campo de visão vertical em radianos
}

// basis retorna os vetores forward, right e up normalizados da câmera.
func (c Camera) basis() (fwd, right, up mgl64.Vec3) {
	fwd = c.Target.Sub(c.Eye).Normalize()
	upHint := c.Up
	if upHint.Len() == 0 || math.Abs(fwd.Dot(upHint.Normalize())) > 0.999 {
		upHint = mgl64.Vec3{0, 0, -1}
	}
	right = fwd.Cross(upHint).Normalize()
	up = right.Cross(fwd)
	return fwd, right, up
}

// Lighting são os parâmetros do modelo de Phong.
type Lighting struct {
	Dir       mgl64.Vec3 // Direção para a luz (normalizada)
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// DefaultLighting segue a iluminação usada para moléculas em GIF.
func DefaultLighting(ambient float64) Lighting {
	return Lighting{
		Dir:       mgl64.Vec3{-1, 1, 1}.Normalize(),
		Ambient:   ambient,
		Diffuse:   1.0,
		Specular:  0.7,
		Shininess: 32,
	}
}

// snapshot é uma cópia imutável das primitivas de um frame.
type snapshot struct {
	spheres   []scene.Sphere
	cylinders []scene.Cylinder
	boxes     []scene.Box
	bg        mgl64.Vec3
}

func takeSnapshot(sc *scene.Scene) snapshot {
	s := snapshot{bg: sc.Background}
	sc.Walk(func(n scene.Node) {
		switch p := n.(type) {
		case *scene.Sphere:
			s.spheres = append(s.spheres, *p)
		case *scene.Cylinder:
			s.cylinders = append(s.cylinders, *p)
		case *scene.Box:
			s.boxes = append(s.boxes, *p)
		}
	})
	return s
}

// intersectSphere retorna a distância t ao longo do raio até a esfera.
func intersectSphere(origin, dir mgl64.Vec3, sp *scene.Sphere) (float64, bool) {
	oc := origin.Sub(sp.Center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - sp.Radius*sp.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t1 > epsilon {
		return t1, true
	}
	if t2 > epsilon {
		return t2, true
	}
	return 0, false
}

// intersectCylinder calcula a interseção com um cilindro finito (com tampas).
// Retorna o menor t positivo e a normal no ponto atingido.
func intersectCylinder(origin, dir mgl64.Vec3, cyl *scene.Cylinder) (float64, bool, mgl64.Vec3) {
	L := cyl.Axis.Len()
	if L == 0 {
		return 0, false, mgl64.Vec3{}
	}
	axis := cyl.Axis.Mul(1 / L)
	dp := origin.Sub(cyl.Pos)

	// Superfície lateral
	dDotA := dir.Dot(axis)
	dPerp := dir.Sub(axis.Mul(dDotA))
	dpPerp := dp.Sub(axis.Mul(dp.Dot(axis)))
	A := dPerp.Dot(dPerp)
	B := 2 * dPerp.Dot(dpPerp)
	C := dpPerp.Dot(dpPerp) - cyl.Radius*cyl.Radius

	tMin := math.Inf(1)
	hit := false
	var normal mgl64.Vec3

	if math.Abs(A) > epsilon {
		disc := B*B - 4*A*C
		if disc >= 0 {
			sqrtDisc := math.Sqrt(disc)
			for _, t := range []float64{(-B - sqrtDisc) / (2 * A), (-B + sqrtDisc) / (2 * A)} {
				if t <= epsilon || t >= tMin {
					continue
				}
				p := origin.Add(dir.Mul(t))
				proj := p.Sub(cyl.Pos).Dot(axis)
				if proj >= 0 && proj <= L {
					tMin = t
					hit = true
					normal = p.Sub(cyl.Pos.Add(axis.Mul(proj))).Normalize()
				}
			}
		}
	}

	// Tampas
	if math.Abs(dDotA) > epsilon {
		for _, lid := range []struct {
			center mgl64.Vec3
			normal mgl64.Vec3
		}{
			{cyl.Pos, axis.Mul(-1)},
			{cyl.End(), axis},
		} {
			t := lid.center.Sub(origin).Dot(axis) / dDotA
			if t <= epsilon || t >= tMin {
				continue
			}
			p := origin.Add(dir.Mul(t))
			if p.Sub(lid.center).Len() <= cyl.Radius {
				tMin = t
				hit = true
				normal = lid.normal
			}
		}
	}

	return tMin, hit, normal
}

// intersectBox testa uma caixa alinhada aos eixos (slab). A orientação da
// caixa é ignorada.
func intersectBox(origin, dir mgl64.Vec3, b *scene.Box) (float64, bool, mgl64.Vec3) {
	half := b.Size.Mul(0.5)
	lo, hi := b.Pos.Sub(half), b.Pos.Add(half)

	tNear, tFar := math.Inf(-1), math.Inf(1)
	var normal mgl64.Vec3
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false, mgl64.Vec3{}
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		n := mgl64.Vec3{}
		n[i] = -1
		if t1 > t2 {
			t1, t2 = t2, t1
			n[i] = 1
		}
		if t1 > tNear {
			tNear = t1
			normal = n
		}
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, false, mgl64.Vec3{}
		}
	}
	if tNear > epsilon {
		return tNear, true, normal
	}
	return 0, false, mgl64.Vec3{}
}

type hitInfo struct {
	t       float64
	normal  mgl64.Vec3
	color   mgl64.Vec3
	opacity float64
}

func (s *snapshot) closest(origin, dir mgl64.Vec3) (hitInfo, bool) {
	best := hitInfo{t: math.Inf(1)}
	found := false
	for i := range s.spheres {
		sp := &s.spheres[i]
		if t, ok := intersectSphere(origin, dir, sp); ok && t < best.t {
			p := origin.Add(dir.Mul(t))
			best = hitInfo{t: t, normal: p.Sub(sp.Center).Normalize(), color: sp.Color, opacity: 1}
			found = true
		}
	}
	for i := range s.cylinders {
		c := &s.cylinders[i]
		if t, ok, n := intersectCylinder(origin, dir, c); ok && t < best.t {
			best = hitInfo{t: t, normal: n, color: c.Color, opacity: c.Opacity}
			found = true
		}
	}
	for i := range s.boxes {
		b := &s.boxes[i]
		if t, ok, n := intersectBox(origin, dir, b); ok && t < best.t {
			best = hitInfo{t: t, normal: n, color: b.Color, opacity: b.Opacity}
			found = true
		}
	}
	return best, found
}

// inShadow considera apenas esferas e cilindros opacos o bastante.
func (s *snapshot) inShadow(origin, lightDir mgl64.Vec3) bool {
	for i := range s.spheres {
		if _, ok := intersectSphere(origin, lightDir, &s.spheres[i]); ok {
			return true
		}
	}
	for i := range s.cylinders {
		if s.cylinders[i].Opacity < 0.5 {
			continue
		}
		if _, ok, _ := intersectCylinder(origin, lightDir, &s.cylinders[i]); ok {
			return true
		}
	}
	return false
}

// reflect retorna a reflexão de I em torno da normal N.
func reflect(I, N mgl64.Vec3) mgl64.Vec3 {
	return I.Sub(N.Mul(2 * I.Dot(N)))
}

// trace segue o raio; superfícies translúcidas misturam com o que está atrás.
func (s *snapshot) trace(origin, dir mgl64.Vec3, light Lighting, depth int) mgl64.Vec3 {
	h, ok := s.closest(origin, dir)
	if !ok {
		return s.bg
	}

	p := origin.Add(dir.Mul(h.t))
	n := h.normal
	if n.Dot(dir) > 0 {
		n = n.Mul(-1)
	}

	var diffuse, specular float64
	if !s.inShadow(p.Add(n.Mul(epsilon)), light.Dir) {
		diffuse = light.Diffuse * math.Max(n.Dot(light.Dir), 0)
		viewDir := dir.Mul(-1)
		specular = light.Specular * math.Pow(math.Max(viewDir.Dot(reflect(light.Dir.Mul(-1), n)), 0), light.Shininess)
	}
	intensity := light.Ambient + diffuse
	shaded := h.color.Mul(intensity).Add(mgl64.Vec3{specular, specular, specular})

	if h.opacity >= 1 || depth <= 0 {
		return shaded
	}
	behind := s.trace(p.Add(dir.Mul(epsilon*10)), dir, light, depth-1)
	return shaded.Mul(h.opacity).Add(behind.Mul(1 - h.opacity))
}

func toRGBA(c mgl64.Vec3) color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}

// renderFrame renderiza uma imagem width x height; uma goroutine por linha.
func renderFrame(s snapshot, cam Camera, light Lighting, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fwd, right, up := cam.basis()
	halfHeight := math.Tan(cam.FOV / 2)
	halfWidth := float64(width) / float64(height) * halfHeight

	var wg sync.WaitGroup
	for j := 0; j < height; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			for i := 0; i < width; i++ {
				u := (2*(float64(i)+0.5)/float64(width) - 1) * halfWidth
				v := (1 - 2*(float64(j)+0.5)/float64(height)) * halfHeight
				dir := fwd.Add(right.Mul(u)).Add(up.Mul(v)).Normalize()
				img.SetRGBA(i, j, toRGBA(s.trace(cam.Eye, dir, light, 3)))
			}
		}(j)
	}
	wg.Wait()
	return img
}
