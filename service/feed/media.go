package feed

// media holds sample video and image URLs per category id.
var media = map[string]struct {
	videos []string
	images []string
}{
	"ai": {
		videos: []string{
			"https://www.youtube.com/watch?v=3M_5oYU-IsU",
			"https://www.youtube.com/watch?v=oj-2Uu6CwQI",
			"https://www.youtube.com/watch?v=9PMuCAFJrXA",
			"https://www.youtube.com/watch?v=NrmMk1Myrxc",
			"https://www.youtube.com/watch?v=hRgSrEU2miE",
		},
		images: []string{
			"https://engineering.fb.com/wp-content/uploads/2016/12/grid-AI.jpg",
			"https://i.pinimg.com/736x/9b/84/0a/9b840ab38435b1fae3860d4865735b8d.jpg",
			"https://i.pinimg.com/736x/b6/e1/3b/b6e13b07d7dfce83895dd4a40b5cfb09.jpg",
			"https://i.pinimg.com/736x/6c/da/ee/6cdaee8ea3d0928b13fd8edbc02124af.jpg",
			"https://i.pinimg.com/736x/04/35/87/04358731b4500e80ab92641f0323ee4a.jpg",
		},
	},
	"learning": {
		videos: []string{
			"https://www.youtube.com/watch?v=5JKgUoY9pTg",
			"https://www.youtube.com/watch?v=V-UvSKe8jW4",
			"https://www.youtube.com/watch?v=Sn3Bvnpcabg",
			"https://www.youtube.com/watch?v=j2sRcZoTYGw",
			"https://www.youtube.com/watch?v=ukLnPbIffxE",
		},
		images: []string{
			"https://i.pinimg.com/736x/0e/4e/bf/0e4ebfc212b1fb7d8ef414032e3efb11.jpg",
			"https://i.pinimg.com/736x/2c/e1/80/2ce180ff97a6d078bfc3da7eb849f56d.jpg",
			"https://i.pinimg.com/736x/ac/23/ff/ac23ff597406ea65c047477c32aa33f0.jpg",
			"https://i.pinimg.com/736x/bd/ca/5a/bdca5a49c577cd6c9885a0086fa7dad5.jpg",
			"https://i.pinimg.com/736x/8e/bc/b1/8ebcb1446454f5400059f128c9bfb4ee.jpg",
		},
	},
	"news": {
		videos: []string{
			"https://www.youtube.com/watch?v=JG0l3V0ElLY",
			"https://www.youtube.com/watch?v=s3wUMEcjJY8",
			"https://www.youtube.com/watch?v=MbkW08xlCpk",
			"https://www.youtube.com/watch?v=CVl1Bgtj6bY",
			"https://www.youtube.com/watch?v=NvqKZHpKs-g",
		},
		images: []string{
			"https://i.pinimg.com/474x/b2/a7/8b/b2a78b7520577fc3664213e22bffd2c3.jpg",
			"https://i.pinimg.com/474x/21/09/1a/21091aba50a1d9c82dc6eab1dc5df6ca.jpg",
			"https://i.pinimg.com/474x/74/d7/f2/74d7f223a059a135521a8eb7de9dfac7.jpg",
			"https://i.pinimg.com/474x/5c/04/4d/5c044dfa3ddd5ef809f1c8e473d9bf35.jpg",
			"https://i.pinimg.com/474x/6c/82/f4/6c82f420bbf1b6210361cc40bed755ae.jpg",
		},
	},
	"web3": {
		videos: []string{
			"https://www.youtube.com/watch?v=4II3GhPGvo4",
			"https://www.youtube.com/watch?v=nHhAEkG1y2U",
			"https://www.youtube.com/watch?v=wHTcrmhskto",
			"https://www.youtube.com/watch?v=lik9hBIL1-Y",
			"https://www.youtube.com/watch?v=rIC1JSkJsQE",
		},
		images: []string{
			"https://i.pinimg.com/474x/a4/72/26/a472269de8c438b8b2d89ea0edfc03e3.jpg",
			"https://i.pinimg.com/474x/44/18/94/441894ddfcd410952a19ba5716802019.jpg",
			"https://i.pinimg.com/474x/01/14/b6/0114b612d66b093689d49c6f2b3b39b3.jpg",
			"https://i.pinimg.com/474x/04/60/cf/0460cfc6840cca7cdb7d7ac82cc11afc.jpg",
			"https://i.pinimg.com/474x/64/9e/44/649e447a33cf559b196c9852811043ae.jpg",
		},
	},
	"travel": {
		videos: []string{
			"https://www.youtube.com/watch?v=pNmMLmoQw9I",
			"https://www.youtube.com/watch?v=qWu5PVBQd0A",
			"https://www.youtube.com/watch?v=K_7k9d4lgzg",
			"https://www.youtube.com/watch?v=vzSHcyXfNPw",
			"https://www.youtube.com/watch?v=WdJ-ubCYH_4",
		},
		images: []string{
			"https://i.pinimg.com/474x/87/f8/05/87f8054d09556ff2361ee3b59bebd574.jpg",
			"https://i.pinimg.com/474x/17/47/53/174753ef051b3d126a442ca7d6f43d7c.jpg",
			"https://i.pinimg.com/474x/62/e2/78/62e2781b5ce6216f5e9bd6c7f1500bcf.jpg",
			"https://i.pinimg.com/474x/b0/a0/7a/b0a07ab0e7acbd6d6ff61fe653460231.jpg",
			"https://i.pinimg.com/474x/ef/cf/33/efcf33b9cff23aac46a8e644bc5e7bee.jpg",
		},
	},
	"twitter": {
		videos: []string{
			"https://www.youtube.com/watch?v=vJXWfm3e9Ck",
			"https://www.youtube.com/watch?v=CPZj8-G3Css",
			"https://www.youtube.com/watch?v=qpWu9f2cXnc",
			"https://www.youtube.com/watch?v=HhwTkhvD0oo",
			"https://www.youtube.com/watch?v=6F3-InOdMP4",
		},
		images: []string{
			"https://i.pinimg.com/474x/32/22/1c/32221cf48886cfb4833ca99ff2e6ff72.jpg",
			"https://i.pinimg.com/474x/3f/24/26/3f242682439a8d1e23f316d84d76efff.jpg",
			"https://i.pinimg.com/736x/22/56/a2/2256a263ce864f7e03ea0ec66d34136a.jpg",
			"https://i.pinimg.com/474x/df/92/a6/df92a6dcc6292e55e22633ee8949752b.jpg",
			"https://i.pinimg.com/474x/1a/e8/bc/1ae8bcdcef865fe7a50e34148c8cb1ce.jpg",
		},
	},
	"crypto": {
		videos: []string{
			"https://www.youtube.com/watch?v=rYQgy8QDEBI",
			"https://www.youtube.com/watch?v=SSo_EIwHSd4",
			"https://www.youtube.com/watch?v=Yb6825iv0Vk",
			"https://www.youtube.com/watch?v=8qPDPlMSlwA",
			"https://www.youtube.com/watch?v=EH6vE97qIP4",
		},
		images: []string{
			"https://i.pinimg.com/474x/2d/5b/fc/2d5bfc01c8e0a79cebdc5f451351a524.jpg",
			"https://i.pinimg.com/474x/f9/5d/22/f95d22789623dc3ce6a76e793ff752b5.jpg",
			"https://i.pinimg.com/474x/17/09/c8/1709c8a8c493f4a9db7b94baa496b106.jpg",
			"https://i.pinimg.com/736x/1a/75/0e/1a750e065686c64de229c4dad6ec0b96.jpg",
			"https://i.pinimg.com/736x/fa/d3/45/fad3459cd6e5e6ccf57b44eac020d5d1.jpg",
		},
	},
	"tech": {
		videos: []string{
			"https://www.youtube.com/watch?v=a8fHgx9mE5U",
			"https://www.youtube.com/watch?v=0A_J5B8WqOc",
			"https://www.youtube.com/watch?v=Da3VbJMCYyY",
			"https://www.youtube.com/watch?v=M5QY2_8704o",
			"https://www.youtube.com/watch?v=tO01J-M3g0U",
		},
		images: []string{
			"https://i.pinimg.com/474x/c9/88/0a/c9880a8abf25f389be7154e8fee18270.jpg",
			"https://i.pinimg.com/474x/50/23/c7/5023c74a55669267f9bbc674c8d9d029.jpg",
			"https://i.pinimg.com/474x/3b/bc/c8/3bbcc805505a0fd0ca31c0b9d5d99ee4.jpg",
			"https://i.pinimg.com/736x/e3/da/0a/e3da0a3209b0797b8fc1fb2e90a2155a.jpg",
			"https://i.pinimg.com/736x/4a/37/92/4a37927d51ed5e5f31387f5f245af808.jpg",
		},
	},
	"defi": {
		videos: []string{
			"https://www.youtube.com/watch?v=k9HYC0EJU6E",
			"https://www.youtube.com/watch?v=H-O3ASEmpS8",
			"https://www.youtube.com/watch?v=o9ObYRjpIhs",
			"https://www.youtube.com/watch?v=k1In9kRUGbE",
			"https://www.youtube.com/watch?v=QfpobP6dDIQ",
		},
		images: []string{
			"https://i.pinimg.com/736x/78/69/12/786912b0c88f2e7a4e364045fd15cf1c.jpg",
			"https://i.pinimg.com/736x/7c/6e/08/7c6e08fb64ee19ea947650756ef3c77d.jpg",
			"https://i.pinimg.com/474x/eb/55/6b/eb556b46931c5dceee13dd129131f3bc.jpg",
			"https://i.pinimg.com/474x/4b/36/ab/4b36ab68b620383dc87698126aa578a0.jpg",
			"https://i.pinimg.com/474x/4c/ec/8d/4cec8d879334dfebb4240a9a1f260c20.jpg",
		},
	},
	"nft": {
		videos: []string{
			"https://www.youtube.com/watch?v=FkUn86bH34M",
			"https://www.youtube.com/watch?v=8Kqz2dnp3jE",
			"https://www.youtube.com/watch?v=zpROwouRo_M",
			"https://www.youtube.com/watch?v=HE8SYGFjIVg",
			"https://www.youtube.com/watch?v=C7J_nbz8UZA",
		},
		images: []string{
			"https://i.pinimg.com/474x/52/62/f2/5262f20325d1b5d64a2af8b0c8e78380.jpg",
			"https://i.pinimg.com/474x/c4/39/34/c43934eb4d1ad82c3818b841529bccd6.jpg",
			"https://i.pinimg.com/474x/03/b8/40/03b840da18db1834521177adac8a8c82.jpg",
			"https://i.pinimg.com/474x/a7/0d/88/a70d88e4c623225cb41b623c22a29c72.jpg",
			"https://i.pinimg.com/474x/12/70/1a/12701a55aa606851722ff23e9cd7dda8.jpg",
		},
	},
	"dao": {
		videos: []string{
			"https://www.youtube.com/watch?v=KHm0uUPqmVE",
			"https://www.youtube.com/watch?v=9k6t-9INkEM",
			"https://www.youtube.com/watch?v=JvTgl1EfqRQ",
			"https://www.youtube.com/watch?v=Qz7VTl-lUj4",
			"https://www.youtube.com/watch?v=oMZhAa3_piM",
		},
		images: []string{
			"https://images.unsplash.com/photo-1639762681485-074b7f938ba0",
			"https://images.unsplash.com/photo-1516321318423-f06f85e504b3",
			"https://images.unsplash.com/photo-1559445368-b8a993a2e39f",
			"https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3",
			"https://images.unsplash.com/photo-1542744095-fcf48d80b0fd",
		},
	},
	"metaverse": {
		videos: []string{
			"https://www.youtube.com/watch?v=9RH2X7HUfS0",
			"https://www.youtube.com/watch?v=KD2TDt-EXtw",
			"https://www.youtube.com/watch?v=gElfIo6uw4g",
			"https://www.youtube.com/watch?v=CbI79e5iZKs",
			"https://www.youtube.com/watch?v=gfYQr4QsQxU",
		},
		images: []string{
			"https://i.pinimg.com/474x/71/6f/bd/716fbd7342e90cc3e516477b0a1045ec.jpg",
			"https://i.pinimg.com/474x/12/eb/41/12eb4102312787d821ba6847cef41113.jpg",
			"https://i.pinimg.com/474x/a9/19/ef/a919efebd7c87e1c0f407fbf22109987.jpg",
			"https://i.pinimg.com/474x/57/2d/3a/572d3a163324953c1bbce9e980f39b04.jpg",
			"https://i.pinimg.com/474x/2c/59/a7/2c59a73527f59ca93ab0f78a640478da.jpg",
		},
	},
}

const (
	defaultVideoURL = "https://www.youtube.com/watch?v=4II3GhPGvo4"
	defaultImageURL = "https://images.unsplash.com/photo-1639762681485-074b7f938ba0"
)
